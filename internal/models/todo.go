package models

import "time"

// Todo is a shared item: there is no ownership link to a user, any
// authenticated caller may read or modify any todo.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"created_at"`
}
