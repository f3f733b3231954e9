package models

import "time"

// FontSize is the UI font preference stored alongside the expenses default.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// Valid reports whether the font size is supported.
func (f FontSize) Valid() bool {
	return f == FontSmall || f == FontMedium || f == FontLarge
}

// Settings captures the per-user calculator preferences.
type Settings struct {
	UserID          string    `bson:"_id" json:"userId"`
	DefaultExpenses float64   `bson:"default_expenses" json:"defaultExpenses"`
	FontSize        FontSize  `bson:"font_size" json:"fontSize"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}
