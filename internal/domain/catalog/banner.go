package catalog

import (
	"errors"
	"strings"
	"time"
)

// Banner is a promotional slide on the home carousel. Only active banners are
// served publicly, ordered by Position.
type Banner struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	ImageURL  string    `json:"image_url,omitempty"`
	LinkURL   string    `json:"link_url,omitempty"`
	LinkText  string    `json:"link_text,omitempty"`
	Active    bool      `json:"active"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Banner) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return errors.New("banner title cannot be empty")
	}
	if b.Position < 0 {
		return errors.New("banner position cannot be negative")
	}
	return nil
}
