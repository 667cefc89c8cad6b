package config

import (
	"net/url"
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/cat-gallery/internal/fetch"
	"github.com/ytget/cat-gallery/internal/gallery"
)

// Settings keys for Fyne preferences
const (
	KeyEndpoint       = "image_endpoint"
	KeyMaxImageHeight = "max_image_height"
	KeyRequestTimeout = "request_timeout_seconds"
	KeyLanguage       = "app_language"
)

// Default values
const (
	DefaultEndpoint       = fetch.DefaultEndpoint
	DefaultMaxImageHeight = gallery.DefaultMaxHeight
	DefaultRequestTimeout = 0 // no timeout
	DefaultLanguage       = "system"
)

// Limits
const (
	MinImageHeight    = 50
	MaxImageHeight    = 1000
	MaxRequestTimeout = 300 // seconds
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetEndpoint returns the configured image endpoint
func (s *Settings) GetEndpoint() string {
	endpoint := s.app.Preferences().String(KeyEndpoint)
	if endpoint == "" {
		s.SetEndpoint(DefaultEndpoint)
		return DefaultEndpoint
	}
	return endpoint
}

// SetEndpoint sets the image endpoint; empty restores the default
func (s *Settings) SetEndpoint(endpoint string) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	s.app.Preferences().SetString(KeyEndpoint, endpoint)
}

// ValidateEndpoint checks that endpoint is an absolute http(s) URL
func ValidateEndpoint(endpoint string) error {
	parsed, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrEndpointScheme
	}
	if parsed.Host == "" {
		return ErrEndpointHost
	}
	return nil
}

// GetMaxImageHeight returns the maximum display height of gallery images
func (s *Settings) GetMaxImageHeight() int {
	value := s.app.Preferences().Int(KeyMaxImageHeight)
	if value <= 0 {
		s.SetMaxImageHeight(DefaultMaxImageHeight)
		return DefaultMaxImageHeight
	}
	return value
}

// SetMaxImageHeight sets the maximum display height
func (s *Settings) SetMaxImageHeight(height int) {
	if height < MinImageHeight {
		height = MinImageHeight
	}
	if height > MaxImageHeight {
		height = MaxImageHeight
	}
	s.app.Preferences().SetInt(KeyMaxImageHeight, height)
}

// GetRequestTimeout returns the request timeout; zero means none
func (s *Settings) GetRequestTimeout() time.Duration {
	seconds := s.app.Preferences().IntWithFallback(KeyRequestTimeout, DefaultRequestTimeout)
	if seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// SetRequestTimeout sets the request timeout, rounded down to whole seconds
func (s *Settings) SetRequestTimeout(timeout time.Duration) {
	seconds := int(timeout / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	if seconds > MaxRequestTimeout {
		seconds = MaxRequestTimeout
	}
	s.app.Preferences().SetInt(KeyRequestTimeout, seconds)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
