package post

import "time"

// Categories a post may belong to. The check constraint in the posts table
// mirrors this list.
var Categories = []string{
	"Technology", "React", "CSS", "JavaScript", "Node.js", "MongoDB", "Other",
}

const (
	MaxTitleLength   = 100
	MinContentLength = 10
)

// Author is the post-facing summary of the account that wrote it.
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     Author    `json:"author"`
	Category   string    `json:"category"`
	Tags       []string  `json:"tags"`
	Published  bool      `json:"published"`
	Views      int       `json:"views"`
	Image      string    `json:"image,omitempty"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
