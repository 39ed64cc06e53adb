package models

import "time"

// Comment is a reader comment on a post, joined with its author profile.
type Comment struct {
	ID        int64         `json:"id"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	User      CommentAuthor `json:"user"`
}

type CommentAuthor struct {
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// Profile is the stored identity of a signed-in user.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}
