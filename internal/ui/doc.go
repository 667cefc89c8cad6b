package ui

// Package ui contains the Fyne-based desktop user interface for the gallery.
// It wires the load button and image taps to the gallery controller, renders
// the descriptor list as scaled images, and shows fetch notifications and
// settings. All UI strings are localized via Localization.
