package gallery

// Package gallery implements the image gallery controller: an observable
// store holding the gallery sequence, the load and remove operations, and the
// derivation of display descriptors handed to the renderer.
