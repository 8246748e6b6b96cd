package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		path   []string
		artist string
		album  string
		ok     bool
	}{
		{"empty path", nil, "", "", false},
		{"single folder doubles as both", []string{"Mixtapes"}, "Mixtapes", "Mixtapes", true},
		{"artist then album", []string{"Radiohead", "OK Computer"}, "Radiohead", "OK Computer", true},
		{"genre prefix ignored", []string{"Rock", "Radiohead", "OK Computer"}, "Radiohead", "OK Computer", true},
		{"deep hierarchy uses last two", []string{"Music", "Rock", "90s", "Radiohead", "OK Computer"}, "Radiohead", "OK Computer", true},
		{"blank segments dropped", []string{"  ", "Radiohead", "", "OK Computer"}, "Radiohead", "OK Computer", true},
		{"all blank", []string{" ", "\t"}, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artist, album, ok := InferTaxonomy(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.artist, artist)
			assert.Equal(t, tt.album, album)
		})
	}
}
