package post

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePost(t *testing.T) {
	assert.Empty(t, validatePost("My first post", "This is long enough content.", "Technology"))

	assert.Equal(t, "Title is required", validatePost("", "This is long enough content.", "Technology"))
	assert.Equal(t, "Title cannot exceed 100 characters",
		validatePost(strings.Repeat("x", MaxTitleLength+1), "This is long enough content.", "Technology"))
	assert.Equal(t, "Content must be at least 10 characters",
		validatePost("Title", "too short", "Technology"))
	assert.Equal(t, "Invalid category", validatePost("Title", "This is long enough content.", "Gardening"))
}

func TestValidCategory(t *testing.T) {
	for _, category := range Categories {
		assert.True(t, validCategory(category), "category %q", category)
	}
	assert.False(t, validCategory(""))
	assert.False(t, validCategory("technology"), "category matching is case sensitive")
}
