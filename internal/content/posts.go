package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/CopperKoi/Koi-Blog/internal/db"
)

var (
	ErrNotFound     = errors.New("content: not found")
	ErrInvalidInput = errors.New("content: invalid input")
)

type PostService struct {
	db *db.DB
}

func NewPostService(db *db.DB) *PostService {
	return &PostService{db: db}
}

// PostListOptions narrows a listing. AdminView lifts the published/public
// filter; Query matches title, summary and content case-insensitively.
type PostListOptions struct {
	AdminView bool
	Query     string
	Limit     int
}

const postColumns = `id, COALESCE(slug, ''), title, COALESCE(summary, ''),
	COALESCE(content, ''), tags, status, visibility, publish_at, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*Post, error) {
	var (
		p       Post
		rawTags []byte
		publish sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Summary, &p.Content,
		&rawTags, &p.Status, &p.Visibility, &publish, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if publish.Valid {
		t := publish.Time
		p.PublishAt = &t
	}
	p.Tags = []string{}
	if len(rawTags) > 0 {
		if err := json.Unmarshal(rawTags, &p.Tags); err != nil {
			p.Tags = []string{}
		}
	}
	return &p, nil
}

func (s *PostService) List(ctx context.Context, opts PostListOptions) ([]Post, error) {
	conditions := []string{}
	values := []any{}

	if !opts.AdminView {
		conditions = append(conditions,
			"status = 'published'",
			"visibility = 'public'",
			"(publish_at IS NULL OR publish_at <= NOW())",
		)
	}
	if opts.Query != "" {
		values = append(values, "%"+opts.Query+"%")
		idx := len(values)
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE $%d OR summary ILIKE $%d OR content ILIKE $%d)", idx, idx, idx))
	}

	query := "SELECT " + postColumns + " FROM posts"
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY COALESCE(publish_at, created_at) DESC"
	if limit := clampListLimit(opts.Limit); limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// clampListLimit bounds a requested page size to [1, 50]. Zero means the
// caller asked for no limit at all.
func clampListLimit(limit int) int {
	if limit == 0 {
		return 0
	}
	if limit < 1 {
		return 1
	}
	if limit > 50 {
		return 50
	}
	return limit
}

func (s *PostService) Get(ctx context.Context, id string) (*Post, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE id = $1", id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return p, err
}

// PostInput carries the writable post fields. Nil pointers mean "leave as is"
// on update and "use the default" on create.
type PostInput struct {
	ID         string
	Slug       string
	Title      *string
	Summary    *string
	Content    *string
	Tags       *[]string
	Status     *string
	Visibility *string
	PublishAt  *time.Time
	// ClearPublishAt resets publish_at to NULL on update.
	ClearPublishAt bool
}

func (s *PostService) Create(ctx context.Context, in PostInput) (*Post, error) {
	if in.Title == nil || *in.Title == "" {
		return nil, fmt.Errorf("%w: missing title", ErrInvalidInput)
	}

	id := in.ID
	if id == "" {
		id = newPostID()
	}
	slug := in.Slug
	if slug == "" {
		slug = newSlug()
	}

	tags := []string{}
	if in.Tags != nil {
		tags = *in.Tags
	}
	rawTags, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}

	status := "draft"
	if in.Status != nil && *in.Status != "" {
		status = *in.Status
	}
	visibility := "public"
	if in.Visibility != nil && *in.Visibility != "" {
		visibility = *in.Visibility
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO posts (id, slug, title, summary, content, tags, status, visibility, publish_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, id, slug, *in.Title, deref(in.Summary), deref(in.Content),
		rawTags, status, visibility, in.PublishAt)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *PostService) Update(ctx context.Context, id string, in PostInput) (*Post, error) {
	updates := []string{}
	values := []any{}

	set := func(column string, value any) {
		values = append(values, value)
		updates = append(updates, fmt.Sprintf("%s = $%d", column, len(values)))
	}

	if in.Title != nil {
		set("title", *in.Title)
	}
	if in.Summary != nil {
		set("summary", *in.Summary)
	}
	if in.Content != nil {
		set("content", *in.Content)
	}
	if in.Status != nil {
		set("status", *in.Status)
	}
	if in.Visibility != nil {
		set("visibility", *in.Visibility)
	}
	if in.Tags != nil {
		rawTags, err := json.Marshal(*in.Tags)
		if err != nil {
			return nil, err
		}
		set("tags", rawTags)
	}
	if in.PublishAt != nil {
		set("publish_at", *in.PublishAt)
	} else if in.ClearPublishAt {
		set("publish_at", nil)
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no changes", ErrInvalidInput)
	}
	updates = append(updates, "updated_at = NOW()")

	values = append(values, id)
	query := "UPDATE posts SET "
	for i, u := range updates {
		if i > 0 {
			query += ", "
		}
		query += u
	}
	query += fmt.Sprintf(" WHERE id = $%d", len(values))

	res, err := s.db.ExecContext(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
