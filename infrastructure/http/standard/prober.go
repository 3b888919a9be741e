// ABOUTME: Image prober checks that an image URL answers and decodes
// ABOUTME: Only the image header is read so large files stay cheap to probe

package standard

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF support
	_ "image/jpeg" // JPEG support
	_ "image/png"  // PNG support
	"io"
	"net/http"
	"strings"
	"time"

	_ "golang.org/x/image/webp" // WebP support
)

// probeWindow caps how much of the body is read to decode the header
const probeWindow = 1 << 20

// ErrNotImage is returned when the response cannot be decoded as an image
var ErrNotImage = errors.New("response is not a decodable image")

// ImageProber implements interfaces.ImageProber over net/http
type ImageProber struct {
	client *http.Client
}

// NewImageProber creates a prober whose single attempts are bounded by timeout
func NewImageProber(timeout time.Duration) *ImageProber {
	return &ImageProber{
		client: &http.Client{Timeout: timeout},
	}
}

// Probe returns nil when url serves an image that can be decoded
func (p *ImageProber) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image returned status %d", resp.StatusCode)
	}

	// SVG is text and cannot go through image.DecodeConfig
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "image/svg+xml") {
		return nil
	}

	if _, _, err := image.DecodeConfig(io.LimitReader(resp.Body, probeWindow)); err != nil {
		return fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return nil
}
