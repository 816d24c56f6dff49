package content

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/CopperKoi/Koi-Blog/internal/db"
)

const (
	maxAdcode         = 999999
	maxTravelNameSize = 64
)

type TravelService struct {
	db *db.DB
}

func NewTravelService(db *db.DB) *TravelService {
	return &TravelService{db: db}
}

func (s *TravelService) List(ctx context.Context) ([]TravelMark, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT adcode, name, updated_at FROM travel_marks ORDER BY adcode ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	marks := []TravelMark{}
	for rows.Next() {
		var m TravelMark
		if err := rows.Scan(&m.Adcode, &m.Name, &m.UpdatedAt); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}

// TravelItem is the caller-supplied shape for a replace request.
type TravelItem struct {
	Adcode int    `json:"adcode"`
	Name   string `json:"name"`
}

// NormalizeTravelItems validates and canonicalizes a replace request:
// adcodes within the administrative-code range, names 1..64 chars, duplicates
// collapsed keeping the last occurrence, result sorted by adcode.
func NormalizeTravelItems(items []TravelItem) ([]TravelItem, error) {
	if items == nil {
		return nil, fmt.Errorf("%w: invalid items", ErrInvalidInput)
	}

	dedup := make(map[int]TravelItem, len(items))
	order := []int{}
	for _, item := range items {
		if item.Adcode <= 0 || item.Adcode > maxAdcode {
			return nil, fmt.Errorf("%w: invalid adcode", ErrInvalidInput)
		}
		name := strings.TrimSpace(item.Name)
		if name == "" || len([]rune(name)) > maxTravelNameSize {
			return nil, fmt.Errorf("%w: invalid name", ErrInvalidInput)
		}
		if _, seen := dedup[item.Adcode]; !seen {
			order = append(order, item.Adcode)
		}
		dedup[item.Adcode] = TravelItem{Adcode: item.Adcode, Name: name}
	}

	sort.Ints(order)
	normalized := make([]TravelItem, 0, len(order))
	for _, adcode := range order {
		normalized = append(normalized, dedup[adcode])
	}
	return normalized, nil
}

// Replace swaps the whole mark set for the submitted one in a single
// transaction; a failure anywhere leaves the previous set untouched.
func (s *TravelService) Replace(ctx context.Context, items []TravelItem) ([]TravelItem, error) {
	normalized, err := NormalizeTravelItems(items)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM travel_marks"); err != nil {
		return nil, err
	}
	for _, item := range normalized {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO travel_marks (adcode, name, updated_at) VALUES ($1, $2, NOW())",
			item.Adcode, item.Name); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return normalized, nil
}
