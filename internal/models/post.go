package models

import "time"

// Post is a promotional update shown on the shared feed.
type Post struct {
	ID          uint      `json:"id"`
	AuthorEmail string    `json:"author_email"`
	CompanyName string    `json:"company_name"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}
