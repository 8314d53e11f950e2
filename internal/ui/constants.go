// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// BorderWidth is the horizontal space consumed by a panel border.
	BorderWidth = 2

	// MinWidth is the narrowest width the queue view renders at.
	MinWidth = 30

	// DefaultWidth is used before the first WindowSizeMsg arrives.
	DefaultWidth = 80
)
