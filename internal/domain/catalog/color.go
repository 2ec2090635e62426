package catalog

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Color is a palette entry offered as a product variant option.
type Color struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Hex       string    `json:"hex"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Color) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("color name cannot be empty")
	}
	if !hexPattern.MatchString(c.Hex) {
		return errors.New("color hex must look like #RRGGBB")
	}
	return nil
}
