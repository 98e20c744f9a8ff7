package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsYouTubeURL(t *testing.T) {
	assert.True(t, IsYouTubeURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.True(t, IsYouTubeURL("https://youtu.be/dQw4w9WgXcQ"))
	assert.True(t, IsYouTubeURL("https://m.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.False(t, IsYouTubeURL("https://vimeo.com/12345"))
	assert.False(t, IsYouTubeURL("https://cdn.example.com/lesson.mp4"))
	assert.False(t, IsYouTubeURL("::not a url::"))
}

func TestYouTubeThumbnailSkipsNonYouTube(t *testing.T) {
	// Non-YouTube URLs short-circuit without any network call.
	assert.Empty(t, YouTubeThumbnail("https://cdn.example.com/lesson.mp4"))
}
