package media

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/kanban/internal/models"
)

func TestEmbedURL(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=0", true},
		{"https://youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=0", true},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=0", true},
		{"https://youtube.com/shorts/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=0", true},
		{"https://example.com/cat.png", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := EmbedURL(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, IsYouTube(tt.in))
		})
	}
}

func TestResolve(t *testing.T) {
	ref, err := Resolve("https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, models.MediaYouTube, ref.Kind)

	ref, err = Resolve("data:image/png;base64,iVBORw0KGgo=")
	require.NoError(t, err)
	assert.Equal(t, models.MediaImage, ref.Kind)

	_, err = Resolve("ftp://files/a.png")
	assert.True(t, errors.Is(err, models.ErrInvalid))

	_, err = Resolve("  ")
	assert.True(t, errors.Is(err, models.ErrInvalid))
}
