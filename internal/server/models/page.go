package models

import (
	"encoding/json"
	"time"
)

type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "DRAFT"
	ContentStatusPublished ContentStatus = "PUBLISHED"
)

type PageLayout string

const (
	PageLayoutStandard  PageLayout = "STANDARD"
	PageLayoutLanding   PageLayout = "LANDING"
	PageLayoutFullWidth PageLayout = "FULL_WIDTH"
)

type Page struct {
	ID          string        `json:"id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Layout      PageLayout    `json:"layout"`
	Status      ContentStatus `json:"status"`
	ThemeID     string        `json:"themeId,omitempty"`
	Sections    []*Section    `json:"sections,omitempty"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Section is one ordered block of a page. Content is an opaque JSON document
// interpreted by the rendering frontend, not by this API.
type Section struct {
	ID      string          `json:"id"`
	PageID  string          `json:"pageId"`
	Kind    string          `json:"kind"`
	Order   int             `json:"order"`
	Visible bool            `json:"visible"`
	Content json.RawMessage `json:"content,omitempty"`
}

// SectionOrder is one element of a reorder request.
type SectionOrder struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}
