package models

import (
	"encoding/json"
	"time"
)

// Navigation is a named menu (e.g. "header", "footer"). Items is an opaque
// JSON array of links rendered by the frontend.
type Navigation struct {
	Key       string          `json:"key"`
	Items     json.RawMessage `json:"items"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Theme struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	PrimaryColor   string          `json:"primaryColor"`
	SecondaryColor string          `json:"secondaryColor"`
	AccentColor    string          `json:"accentColor,omitempty"`
	LogoURL        string          `json:"logoUrl,omitempty"`
	FaviconURL     string          `json:"faviconUrl,omitempty"`
	Typography     json.RawMessage `json:"typography,omitempty"`
	IsDefault      bool            `json:"isDefault"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
