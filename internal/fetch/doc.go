package fetch

// Package fetch talks to the random cat endpoint. A single GET returns a JSON
// object whose "file" field is the URL of an image; the service decodes it
// into a model.ImageReference and classifies failures with sentinel errors.
