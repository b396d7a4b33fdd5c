package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var articleCols = []string{"id", "title", "content", "author"}

func strPtr(s string) *string { return &s }

func TestDB_CreateArticle(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(mock pgxmock.PgxPoolIface)
		want    *Article
		wantErr error
	}{
		{
			name: "inserted",
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO articles").
					WithArgs("A", "B", "C").
					WillReturnRows(pgxmock.NewRows(articleCols).AddRow(int64(1), "A", "B", "C"))
			},
			want: &Article{ID: 1, Title: "A", Content: "B", Author: "C"},
		},
		{
			name: "connection lost",
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO articles").
					WithArgs("A", "B", "C").
					WillReturnError(errConnLost)
			},
			wantErr: errConnLost,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tc.mock(mock)

			db := NewWithPool(mock)
			got, err := db.CreateArticle(context.Background(), "A", "B", "C")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

var errConnLost = errors.New("connection lost")

func TestDB_ListArticles(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(mock pgxmock.PgxPoolIface)
		want    []*Article
		wantErr error
	}{
		{
			name: "ordered rows",
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("ORDER BY id ASC").
					WillReturnRows(pgxmock.NewRows(articleCols).
						AddRow(int64(1), "t1", "c1", "a1").
						AddRow(int64(2), "t2", "c2", "a2"))
			},
			want: []*Article{
				{ID: 1, Title: "t1", Content: "c1", Author: "a1"},
				{ID: 2, Title: "t2", Content: "c2", Author: "a2"},
			},
		},
		{
			name: "empty table",
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM articles").
					WillReturnRows(pgxmock.NewRows(articleCols))
			},
			want: []*Article{},
		},
		{
			name: "query failed",
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM articles").WillReturnError(errConnLost)
			},
			wantErr: errConnLost,
		},
		{
			name: "row error",
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM articles").
					WillReturnRows(pgxmock.NewRows(articleCols).
						AddRow(int64(1), "t1", "c1", "a1").
						RowError(0, errConnLost))
			},
			wantErr: errConnLost,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			mock.MatchExpectationsInOrder(true)
			tc.mock(mock)

			db := NewWithPool(mock)
			got, err := db.ListArticles(context.Background())
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDB_UpdateArticle(t *testing.T) {
	title := strPtr("A2")

	testCases := []struct {
		name    string
		upd     ArticleUpdate
		mock    func(mock pgxmock.PgxPoolIface)
		want    *Article
		wantErr error
	}{
		{
			name: "title only",
			upd:  ArticleUpdate{Title: title},
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("UPDATE articles").
					WithArgs(title, (*string)(nil), (*string)(nil), int64(1)).
					WillReturnRows(pgxmock.NewRows(articleCols).AddRow(int64(1), "A2", "B", "C"))
			},
			want: &Article{ID: 1, Title: "A2", Content: "B", Author: "C"},
		},
		{
			name: "no fields",
			upd:  ArticleUpdate{},
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("UPDATE articles").
					WithArgs((*string)(nil), (*string)(nil), (*string)(nil), int64(1)).
					WillReturnRows(pgxmock.NewRows(articleCols).AddRow(int64(1), "A", "B", "C"))
			},
			want: &Article{ID: 1, Title: "A", Content: "B", Author: "C"},
		},
		{
			name: "missing row",
			upd:  ArticleUpdate{Title: title},
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("UPDATE articles").
					WithArgs(title, (*string)(nil), (*string)(nil), int64(1)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: ErrArticleNotFound,
		},
		{
			name: "storage failure",
			upd:  ArticleUpdate{Title: title},
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("UPDATE articles").
					WithArgs(title, (*string)(nil), (*string)(nil), int64(1)).
					WillReturnError(errConnLost)
			},
			wantErr: errConnLost,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tc.mock(mock)

			db := NewWithPool(mock)
			got, err := db.UpdateArticle(context.Background(), 1, tc.upd)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDB_DeleteArticle(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(mock pgxmock.PgxPoolIface)
		want    *Article
		wantErr error
	}{
		{
			name: "deleted",
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("DELETE FROM articles").
					WithArgs(int64(7)).
					WillReturnRows(pgxmock.NewRows(articleCols).AddRow(int64(7), "A", "B", "C"))
			},
			want: &Article{ID: 7, Title: "A", Content: "B", Author: "C"},
		},
		{
			name: "missing row",
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("DELETE FROM articles").
					WithArgs(int64(7)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: ErrArticleNotFound,
		},
		{
			name: "storage failure",
			mock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("DELETE FROM articles").
					WithArgs(int64(7)).
					WillReturnError(errConnLost)
			},
			wantErr: errConnLost,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tc.mock(mock)

			db := NewWithPool(mock)
			got, err := db.DeleteArticle(context.Background(), 7)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDB_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing()
	db := NewWithPool(mock)
	assert.NoError(t, db.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
