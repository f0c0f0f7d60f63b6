package model

import (
	"time"
)

const titleLen = 15

type Post struct {
	Id        int64     `json:"id"`
	Text      string    `json:"text"`
	Author    *User     `json:"author"`
	Group     *Group    `json:"group,omitempty"`
	Image     string    `json:"image,omitempty"` // blob name in the uploads bucket
	CreatedAt time.Time `json:"createdAt"`
}

// IsAuthoredBy is the edit permission check
func (p *Post) IsAuthoredBy(user *User) bool {
	return p.Author.Is(user)
}

// Excerpt is the short form used in page titles
func (p *Post) Excerpt() string {
	return truncate(p.Text, titleLen)
}

type Comment struct {
	Id        int64     `json:"id"`
	PostId    int64     `json:"postId"`
	Author    *User     `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func truncate(val string, n int) string {
	runes := []rune(val)
	if len(runes) <= n {
		return val
	}
	return string(runes[:n])
}
