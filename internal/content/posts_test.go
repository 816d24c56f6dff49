package content

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CopperKoi/Koi-Blog/internal/db"
)

func TestClampListLimit(t *testing.T) {
	assert.Equal(t, 0, clampListLimit(0))
	assert.Equal(t, 1, clampListLimit(-5))
	assert.Equal(t, 1, clampListLimit(1))
	assert.Equal(t, 25, clampListLimit(25))
	assert.Equal(t, 50, clampListLimit(50))
	assert.Equal(t, 50, clampListLimit(500))
}

func TestListClampsNegativeLimitToOne(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	svc := NewPostService(&db.DB{DB: conn})

	mock.ExpectQuery(`ORDER BY COALESCE\(publish_at, created_at\) DESC LIMIT 1$`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "slug", "title", "summary", "content", "tags",
			"status", "visibility", "publish_at", "created_at", "updated_at",
		}))

	posts, err := svc.List(context.Background(), PostListOptions{AdminView: true, Limit: -3})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
