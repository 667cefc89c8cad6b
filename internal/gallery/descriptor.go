package gallery

import "github.com/ytget/cat-gallery/internal/model"

// Display defaults for every rendered image
const (
	DefaultAltText   = "Cat"
	DefaultMaxHeight = 200
)

// Descriptor describes one rendered gallery entry
type Descriptor struct {
	Position  int
	Source    model.ImageReference
	Alt       string
	MaxHeight int
	OnClick   func()
}

// deriveDescriptors maps seq to descriptors whose click handlers remove the
// entry at the position they were derived for
func deriveDescriptors(seq model.GallerySequence, alt string, maxHeight int, remove func(int)) []Descriptor {
	descs := make([]Descriptor, 0, len(seq))
	for i, ref := range seq {
		position := i
		descs = append(descs, Descriptor{
			Position:  position,
			Source:    ref,
			Alt:       alt,
			MaxHeight: maxHeight,
			OnClick: func() {
				remove(position)
			},
		})
	}
	return descs
}
