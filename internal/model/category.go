package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ColorRGB is a display color with each channel normalized to [0, 1].
type ColorRGB struct {
	Red   float64
	Green float64
	Blue  float64
}

// Validate checks that every channel is within [0, 1].
func (c ColorRGB) Validate() error {
	channels := map[string]float64{
		"red":   c.Red,
		"green": c.Green,
		"blue":  c.Blue,
	}
	for name, value := range channels {
		if value < 0 || value > 1 {
			return fmt.Errorf("color channel %s out of range [0, 1]: %v", name, value)
		}
	}
	return nil
}

// Category represents a user-defined tag applied to entries.
// A category does not own its entries, but deleting one cascades
// to delete all entries referencing it; the store enforces that.
type Category struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Icon      string // Opaque symbolic icon reference
	Color     ColorRGB
}

// NewCategory creates a category with a fresh ID.
func NewCategory(name string, color ColorRGB, icon string, now time.Time) *Category {
	return &Category{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		CreatedAt: now,
	}
}

// Validate checks the category invariants.
func (c *Category) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("category ID cannot be empty")
	}
	if c.Name == "" {
		return fmt.Errorf("category name cannot be empty")
	}
	if err := c.Color.Validate(); err != nil {
		return fmt.Errorf("invalid category color: %w", err)
	}
	return nil
}
