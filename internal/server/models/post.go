package models

import "time"

type Category struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type Tag struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// AuthorRef is the trimmed author projection embedded in post listings.
type AuthorRef struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type BlogPost struct {
	ID          string        `json:"id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Excerpt     string        `json:"excerpt,omitempty"`
	Content     string        `json:"content"`
	Status      ContentStatus `json:"status"`
	AuthorID    string        `json:"authorId"`
	Author      *AuthorRef    `json:"author,omitempty"`
	CategoryID  string        `json:"categoryId,omitempty"`
	Category    *Category     `json:"category,omitempty"`
	CoverID     string        `json:"coverId,omitempty"`
	Tags        []*Tag        `json:"tags,omitempty"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
