package config

import "errors"

// Endpoint validation errors
var (
	ErrEndpointScheme = errors.New("URL must start with http:// or https://")
	ErrEndpointHost   = errors.New("URL must include a host")
)
