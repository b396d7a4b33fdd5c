package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CreateArticle inserts a new article and returns the stored row
func (db *DB) CreateArticle(ctx context.Context, title, content, author string) (*Article, error) {
	query := `
		INSERT INTO articles (title, content, author)
		VALUES ($1, $2, $3)
		RETURNING id, title, content, author
	`

	var article Article
	err := db.pool.QueryRow(ctx, query, title, content, author).Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.Author,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	return &article, nil
}

// ListArticles retrieves all articles in ascending ID order.
// An empty table yields an empty slice, not an error.
func (db *DB) ListArticles(ctx context.Context) ([]*Article, error) {
	query := `
		SELECT id, title, content, author
		FROM articles
		ORDER BY id ASC
	`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	articles := make([]*Article, 0)
	for rows.Next() {
		var article Article
		err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Content,
			&article.Author,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, &article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}

	return articles, nil
}

// UpdateArticle applies a partial update. Fields left nil in upd keep
// their stored value.
func (db *DB) UpdateArticle(ctx context.Context, id int64, upd ArticleUpdate) (*Article, error) {
	query := `
		UPDATE articles
		SET title = COALESCE($1, title),
			content = COALESCE($2, content),
			author = COALESCE($3, author)
		WHERE id = $4
		RETURNING id, title, content, author
	`

	var article Article
	err := db.pool.QueryRow(ctx, query, upd.Title, upd.Content, upd.Author, id).Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.Author,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	return &article, nil
}

// DeleteArticle removes an article and returns the deleted row
func (db *DB) DeleteArticle(ctx context.Context, id int64) (*Article, error) {
	query := `
		DELETE FROM articles
		WHERE id = $1
		RETURNING id, title, content, author
	`

	var article Article
	err := db.pool.QueryRow(ctx, query, id).Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.Author,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete article: %w", err)
	}

	return &article, nil
}
