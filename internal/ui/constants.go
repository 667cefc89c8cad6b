package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconCat      = "🐱"
	IconError    = "❌"
)

// Text fragments
const (
	ErrorSeparator = ": "
)

// Layout sizing
const (
	WindowWidth  float32 = 800
	WindowHeight float32 = 600

	// Placeholder width relative to the max height while a thumbnail loads
	PlaceholderAspect float32 = 1.0

	LogoSize float32 = 32

	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 320
)

// NotificationAutoHide is how long a fetch error stays in the notification panel
const NotificationAutoHide = 5 * time.Second
