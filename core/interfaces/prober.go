package interfaces

import "context"

// ImageProber checks whether an image URL actually loads.
type ImageProber interface {
	// Probe returns nil when the image at url can be loaded and decoded.
	Probe(ctx context.Context, url string) error
}
