package database

// Article is a stored article. All fields are non-null once persisted.
type Article struct {
	ID      int64  `db:"id" json:"id"`
	Title   string `db:"title" json:"title"`
	Content string `db:"content" json:"content"`
	Author  string `db:"author" json:"author"`
}

// ArticleUpdate carries the fields of a partial update.
// A nil field keeps the stored value.
type ArticleUpdate struct {
	Title   *string
	Content *string
	Author  *string
}
