package content

import (
	"context"
	"database/sql"

	"github.com/CopperKoi/Koi-Blog/internal/db"
)

// AboutService manages the single about page row (id = 1).
type AboutService struct {
	db *db.DB
}

func NewAboutService(db *db.DB) *AboutService {
	return &AboutService{db: db}
}

func (s *AboutService) Get(ctx context.Context) (*About, error) {
	var a About
	err := s.db.QueryRowContext(ctx,
		"SELECT content, updated_at FROM about WHERE id = 1",
	).Scan(&a.Content, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return &About{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AboutService) Update(ctx context.Context, markdown string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE about SET content = $1, updated_at = NOW() WHERE id = 1", markdown)
	return err
}
