package model

// Package model defines domain data structures used across the app: image
// references, the gallery sequence, fetch tasks and their status enum.
// Sequences are values: every operation returns a new sequence and never
// mutates the receiver, so a snapshot handed to the UI stays stable.
