package content

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/CopperKoi/Koi-Blog/internal/db"
)

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

type FriendService struct {
	db *db.DB
}

func NewFriendService(db *db.DB) *FriendService {
	return &FriendService{db: db}
}

const friendColumns = "id, title, url, COALESCE(note, ''), sort_order, created_at"

func scanFriend(row interface{ Scan(...any) error }) (*FriendLink, error) {
	var f FriendLink
	err := row.Scan(&f.ID, &f.Title, &f.URL, &f.Note, &f.SortOrder, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FriendService) List(ctx context.Context) ([]FriendLink, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+friendColumns+" FROM friend_links ORDER BY sort_order DESC, created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []FriendLink{}
	for rows.Next() {
		f, err := scanFriend(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *f)
	}
	return links, rows.Err()
}

func (s *FriendService) Get(ctx context.Context, id string) (*FriendLink, error) {
	f, err := scanFriend(s.db.QueryRowContext(ctx,
		"SELECT "+friendColumns+" FROM friend_links WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return f, err
}

// Create appends the link at the top of the list (highest sort key).
func (s *FriendService) Create(ctx context.Context, title, rawURL, note string) (*FriendLink, error) {
	if title == "" || rawURL == "" {
		return nil, fmt.Errorf("%w: missing title or url", ErrInvalidInput)
	}
	safeURL, ok := NormalizeSafeHTTPURL(rawURL)
	if !ok {
		return nil, fmt.Errorf("%w: invalid url", ErrInvalidInput)
	}

	var maxOrder int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(sort_order), 0) FROM friend_links").Scan(&maxOrder); err != nil {
		return nil, err
	}

	id := newFriendID()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO friend_links (id, title, url, note, sort_order)
		VALUES ($1,$2,$3,$4,$5)
	`, id, title, safeURL, note, maxOrder+1)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// FriendUpdate carries optional field edits; nil means keep.
type FriendUpdate struct {
	Title *string
	URL   *string
	Note  *string
}

func (s *FriendService) Update(ctx context.Context, id string, upd FriendUpdate) (*FriendLink, error) {
	updates := []string{}
	values := []any{}

	set := func(column string, value any) {
		values = append(values, value)
		updates = append(updates, fmt.Sprintf("%s = $%d", column, len(values)))
	}

	if upd.Title != nil {
		set("title", *upd.Title)
	}
	if upd.URL != nil {
		safeURL, ok := NormalizeSafeHTTPURL(*upd.URL)
		if !ok {
			return nil, fmt.Errorf("%w: invalid url", ErrInvalidInput)
		}
		set("url", safeURL)
	}
	if upd.Note != nil {
		set("note", *upd.Note)
	}

	if len(updates) > 0 {
		values = append(values, id)
		query := fmt.Sprintf("UPDATE friend_links SET %s WHERE id = $%d",
			strings.Join(updates, ", "), len(values))
		if _, err := s.db.ExecContext(ctx, query, values...); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

func (s *FriendService) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM friend_links WHERE id = $1", id)
	return err
}

// Move swaps the item's sort key with its nearest neighbor in the given
// direction. An item already at the extreme has no neighbor, and the move is
// a silent no-op. The swap is transactional: readers never see two items
// mid-exchange.
func (s *FriendService) Move(ctx context.Context, id string, dir MoveDirection) (*FriendLink, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	comparator, orderBy := ">", "ASC"
	if dir == MoveDown {
		comparator, orderBy = "<", "DESC"
	}

	var (
		neighborID    string
		neighborOrder int
	)
	err = s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT id, sort_order FROM friend_links
		WHERE sort_order %s $1 ORDER BY sort_order %s LIMIT 1
	`, comparator, orderBy), current.SortOrder).Scan(&neighborID, &neighborOrder)
	if err == sql.ErrNoRows {
		return current, nil
	}
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE friend_links SET sort_order = $1 WHERE id = $2", neighborOrder, current.ID); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE friend_links SET sort_order = $1 WHERE id = $2", current.SortOrder, neighborID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Reorder re-ranks the whole collection from the caller's id list: the first
// id gets the highest sort key so an ORDER BY sort_order DESC listing
// reproduces the submitted order exactly. The submitted set must equal the
// existing set; nothing is written otherwise. All updates share one
// transaction.
func (s *FriendService) Reorder(ctx context.Context, orderIDs []string) error {
	if err := ValidateOrderIDs(orderIDs); err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id FROM friend_links")
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if err := MatchExistingIDs(orderIDs, existing); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, id := range orderIDs {
		if _, err := tx.ExecContext(ctx,
			"UPDATE friend_links SET sort_order = $1 WHERE id = $2", rankFor(i, len(orderIDs)), id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// rankFor maps a list position to its sort key: the first submitted id gets
// the highest key, so descending reads return the submitted order.
func rankFor(position, total int) int {
	return total - position
}

// ValidateOrderIDs checks the shape of a bulk-reorder request: non-empty,
// every id a non-empty string, no duplicates.
func ValidateOrderIDs(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: missing orderIds", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: invalid orderIds", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate ids", ErrInvalidInput)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// MatchExistingIDs rejects the request unless the submitted set equals the
// existing set, both in cardinality and membership. No partial reorders, no
// unknown ids.
func MatchExistingIDs(submitted, existing []string) error {
	if len(submitted) != len(existing) {
		return fmt.Errorf("%w: orderIds count mismatch", ErrInvalidInput)
	}
	known := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		known[id] = struct{}{}
	}
	for _, id := range submitted {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: unknown id in orderIds", ErrInvalidInput)
		}
	}
	return nil
}

// NormalizeSafeHTTPURL accepts only absolute http/https URLs and returns the
// canonical form.
func NormalizeSafeHTTPURL(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Host == "" {
		return "", false
	}
	return u.String(), true
}
