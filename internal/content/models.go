package content

import "time"

type Post struct {
	ID         string     `json:"id"`
	Slug       string     `json:"slug"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	Content    string     `json:"content"`
	Tags       []string   `json:"tags"`
	Status     string     `json:"status"`
	Visibility string     `json:"visibility"`
	PublishAt  *time.Time `json:"publish_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Public reports whether the post is visible to anonymous readers at now.
func (p Post) Public(now time.Time) bool {
	if p.Status != "published" || p.Visibility != "public" {
		return false
	}
	return p.PublishAt == nil || !p.PublishAt.After(now)
}

type FriendLink struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Note      string    `json:"note"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

type TravelMark struct {
	Adcode    int       `json:"adcode"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

type About struct {
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}
