package models

import "time"

type Media struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	StorageKey  string    `json:"-"`
	Alt         string    `json:"alt,omitempty"`
	Width       int       `json:"width,omitempty"`
	Height      int       `json:"height,omitempty"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	CreatedByID string    `json:"createdById"`
	CreatedBy   *AuthorRef `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
