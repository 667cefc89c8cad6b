package fetch

import (
	"context"
	"time"

	"github.com/ytget/cat-gallery/internal/model"
)

// Fetcher defines the interface for the image fetch service.
type Fetcher interface {
	// Fetch performs one request and returns the received image reference
	Fetch(ctx context.Context) (model.ImageReference, error)
}

// Configurable is implemented by fetchers whose endpoint and timeout follow settings
type Configurable interface {
	SetEndpoint(endpoint string)
	SetTimeout(timeout time.Duration)
}
