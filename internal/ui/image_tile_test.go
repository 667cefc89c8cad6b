package ui

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/cat-gallery/internal/gallery"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		height    int
		maxHeight int
		expected  fyne.Size
	}{
		{"smaller than max", 100, 50, 200, fyne.NewSize(100, 50)},
		{"exactly max", 300, 200, 200, fyne.NewSize(300, 200)},
		{"scaled down", 800, 400, 200, fyne.NewSize(400, 200)},
		{"no limit", 800, 400, 0, fyne.NewSize(800, 400)},
		{"empty image", 0, 0, 200, fyne.NewSize(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FitSize(tt.width, tt.height, tt.maxHeight))
		})
	}
}

func TestImageTile_TappedCallsOnClick(t *testing.T) {
	test.NewApp()

	clicks := 0
	tile := NewImageTile(gallery.Descriptor{
		Position:  2,
		Source:    "https://x/2.jpg",
		Alt:       "Cat",
		MaxHeight: 200,
		OnClick:   func() { clicks++ },
	})

	test.Tap(tile)
	assert.Equal(t, 1, clicks)
}

func TestImageTile_TappedWithoutOnClick(t *testing.T) {
	test.NewApp()

	tile := NewImageTile(gallery.Descriptor{Source: "https://x/1.jpg", Alt: "Cat", MaxHeight: 200})
	assert.NotPanics(t, func() { test.Tap(tile) })
}

func TestImageTile_SetImage(t *testing.T) {
	test.NewApp()

	tile := NewImageTile(gallery.Descriptor{Source: "https://x/1.jpg", Alt: "Cat", MaxHeight: 200})
	test.NewWindow(tile)

	assert.False(t, tile.Loaded())
	assert.True(t, tile.altLabel.Visible())

	tile.SetImage(nil)
	assert.False(t, tile.Loaded(), "nil image is ignored")

	tile.SetImage(image.NewRGBA(image.Rect(0, 0, 600, 400)))
	assert.True(t, tile.Loaded())
	assert.False(t, tile.altLabel.Visible())
	assert.True(t, tile.image.Visible())
	assert.Equal(t, fyne.NewSize(300, 200), tile.image.MinSize())
}

func TestImageTile_ShowError(t *testing.T) {
	test.NewApp()

	tile := NewImageTile(gallery.Descriptor{Source: "https://x/1.jpg", Alt: "Cat", MaxHeight: 200})
	tile.ShowError()

	assert.True(t, tile.Failed())
	assert.False(t, tile.Loaded())
	assert.Equal(t, IconError+" Cat", tile.altLabel.Text)
}
