package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMetadata(t *testing.T) {
	intPtr := func(n int) *int { return &n }

	tests := []struct {
		filename string
		track    *int
		title    string
	}{
		{"03 - Song_Name.mp3", intPtr(3), "Song Name"},
		{"Intro.mp3", nil, "Intro"},
		{"01.Track_One.flac", intPtr(1), "Track One"},
		{"12_Some-Title.wav", intPtr(12), "Some Title"},
		{" 5 Five.mp3", intPtr(5), "Five"},
		{"01 - .mp3", intPtr(1), ""},
		{"007 - Bond Theme.mp3", intPtr(7), "Bond Theme"},
		{"No Extension Track", nil, "No Extension Track"},
		{"2.mp3", intPtr(2), ""},
		{"Multi - Dash - Title.mp3", nil, "Multi Dash Title"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			track, title := ExtractMetadata(tt.filename)
			if tt.track == nil {
				assert.Nil(t, track)
			} else {
				if assert.NotNil(t, track) {
					assert.Equal(t, *tt.track, *track)
				}
			}
			assert.Equal(t, tt.title, title)
		})
	}
}
