package ui

import (
	"image"
	"image/color"
	"log"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/cat-gallery/internal/gallery"
)

// ImageTile renders one gallery descriptor and removes it when tapped
type ImageTile struct {
	widget.BaseWidget

	desc gallery.Descriptor

	image       *canvas.Image
	placeholder *canvas.Rectangle
	altLabel    *widget.Label
	content     *fyne.Container

	loaded atomic.Bool
	failed atomic.Bool
}

// NewImageTile creates a tile showing the alt text until SetImage is called
func NewImageTile(desc gallery.Descriptor) *ImageTile {
	t := &ImageTile{desc: desc}
	t.ExtendBaseWidget(t)

	t.image = canvas.NewImageFromImage(nil)
	t.image.FillMode = canvas.ImageFillContain
	t.image.ScaleMode = canvas.ImageScaleSmooth
	t.image.Hide()

	t.altLabel = widget.NewLabel(desc.Alt)
	t.altLabel.Alignment = fyne.TextAlignCenter

	height := float32(desc.MaxHeight)
	t.placeholder = canvas.NewRectangle(color.Transparent)
	t.placeholder.SetMinSize(fyne.NewSize(height*PlaceholderAspect, height))

	t.content = container.NewStack(t.placeholder, t.altLabel, t.image)
	return t
}

// Descriptor returns the descriptor this tile renders
func (t *ImageTile) Descriptor() gallery.Descriptor {
	return t.desc
}

// Loaded reports whether an image has been set
func (t *ImageTile) Loaded() bool {
	return t.loaded.Load()
}

// Failed reports whether loading the image failed
func (t *ImageTile) Failed() bool {
	return t.failed.Load()
}

// SetImage shows img scaled to fit the descriptor's max height
func (t *ImageTile) SetImage(img image.Image) {
	if img == nil {
		return
	}

	t.image.Image = img
	t.image.SetMinSize(FitSize(img.Bounds().Dx(), img.Bounds().Dy(), t.desc.MaxHeight))
	t.image.Show()
	t.placeholder.Hide()
	t.altLabel.Hide()
	t.loaded.Store(true)
	t.Refresh()
}

// ShowError keeps the alt text visible and marks it as failed
func (t *ImageTile) ShowError() {
	t.failed.Store(true)
	t.altLabel.SetText(IconError + " " + t.desc.Alt)
}

// Tapped removes the tile's entry from the gallery
func (t *ImageTile) Tapped(*fyne.PointEvent) {
	log.Printf("Image tapped at position %d: %s", t.desc.Position, t.desc.Source)
	if t.desc.OnClick != nil {
		t.desc.OnClick()
	}
}

// Cursor shows a pointer so tiles read as clickable
func (t *ImageTile) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

// CreateRenderer creates the widget renderer
func (t *ImageTile) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.content)
}

// FitSize returns the display size of a width x height image no taller than
// maxHeight, keeping the aspect ratio
func FitSize(width, height, maxHeight int) fyne.Size {
	if width <= 0 || height <= 0 {
		return fyne.NewSize(0, 0)
	}
	if maxHeight <= 0 || height <= maxHeight {
		return fyne.NewSize(float32(width), float32(height))
	}
	scale := float32(maxHeight) / float32(height)
	return fyne.NewSize(float32(width)*scale, float32(maxHeight))
}
