package model

// ImageReference is a URL identifying a remotely hosted image
type ImageReference string

// String returns the URL
func (r ImageReference) String() string {
	return string(r)
}

// GallerySequence is the ordered, 0-indexed list of displayed references
type GallerySequence []ImageReference

// NewGallerySequence creates a sequence holding refs in order
func NewGallerySequence(refs ...ImageReference) GallerySequence {
	seq := make(GallerySequence, len(refs))
	copy(seq, refs)
	return seq
}

// Len returns the number of references
func (s GallerySequence) Len() int {
	return len(s)
}

// At returns the reference at position, or false when out of range
func (s GallerySequence) At(position int) (ImageReference, bool) {
	if position < 0 || position >= len(s) {
		return "", false
	}
	return s[position], true
}

// Append returns a new sequence with ref added as the last element
func (s GallerySequence) Append(ref ImageReference) GallerySequence {
	next := make(GallerySequence, len(s), len(s)+1)
	copy(next, s)
	return append(next, ref)
}

// RemoveAt returns a new sequence without the element at position.
// Out of range positions yield an equal copy.
func (s GallerySequence) RemoveAt(position int) GallerySequence {
	next := make(GallerySequence, 0, len(s))
	for i, ref := range s {
		if i != position {
			next = append(next, ref)
		}
	}
	return next
}

// Clone returns an independent copy
func (s GallerySequence) Clone() GallerySequence {
	return NewGallerySequence(s...)
}

// Contains reports whether ref is present at any position
func (s GallerySequence) Contains(ref ImageReference) bool {
	for _, r := range s {
		if r == ref {
			return true
		}
	}
	return false
}

// Equal reports whether both sequences hold the same references in order
func (s GallerySequence) Equal(other GallerySequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
