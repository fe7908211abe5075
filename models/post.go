package models

import "time"

// Post is a single board entry. Ownership is advisory: Author is the
// username of the account that created the post, matched by string
// equality, not a foreign key. Deleting or renaming an account leaves its
// posts in place.
type Post struct {
	// PostID is the server-assigned unique identifier.
	PostID int64 `json:"id"`

	// Title is the post title. Non-empty after trimming.
	Title string `json:"title"`

	// Content is the post body. Non-empty after trimming.
	Content string `json:"content"`

	// Author is the username of the creating account.
	Author string `json:"author"`

	// CreatedAt is assigned by the server, never by the client.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}
