// ABOUTME: Image color service extracts the prominent color of featured images
// ABOUTME: Uses K-means clustering and caches results as "R,G,B" strings

package services

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blog-views/core/domain"
	"blog-views/core/interfaces"
	"github.com/EdlinOrg/prominentcolor"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultColorTTL is how long extracted colors stay cached
	DefaultColorTTL = 24 * time.Hour

	colorCachePrefix = "imagecolor:"

	// maxImageBytes caps how much of an image is read before decoding
	maxImageBytes = 10 << 20
)

// ImageColorService extracts prominent colors through the shared HTTP client
type ImageColorService struct {
	deps interfaces.Dependencies
	ttl  time.Duration
}

// NewImageColorService creates a new image color service. A ttl of zero
// uses DefaultColorTTL.
func NewImageColorService(deps interfaces.Dependencies, ttl time.Duration) *ImageColorService {
	if ttl <= 0 {
		ttl = DefaultColorTTL
	}
	return &ImageColorService{deps: deps, ttl: ttl}
}

// ExtractColor returns the most prominent color of the image at imageURL.
// Cached colors are returned without downloading the image; failed
// extractions are not cached.
func (s *ImageColorService) ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("empty image URL")
	}

	if color, err := s.GetCachedColor(ctx, imageURL); err == nil {
		return color, nil
	}

	color, err := s.extractFromURL(ctx, imageURL)
	if err != nil {
		s.logDebug("Failed to extract image color", map[string]interface{}{
			"url":   imageURL,
			"error": err.Error(),
		})
		return nil, err
	}

	if s.deps.Cache != nil {
		value := fmt.Sprintf("%d,%d,%d", color.R, color.G, color.B)
		_ = s.deps.Cache.Set(ctx, colorCachePrefix+imageURL, []byte(value), s.ttl)
	}

	return color, nil
}

// GetCachedColor retrieves a color from cache without computing it
func (s *ImageColorService) GetCachedColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("empty image URL")
	}
	if s.deps.Cache == nil {
		return nil, fmt.Errorf("color not found in cache")
	}

	data, err := s.deps.Cache.Get(ctx, colorCachePrefix+imageURL)
	if err != nil || data == nil {
		return nil, fmt.Errorf("color not found in cache")
	}

	var color domain.RGBColor
	if _, err := fmt.Sscanf(string(data), "%d,%d,%d", &color.R, &color.G, &color.B); err != nil {
		return nil, fmt.Errorf("malformed cached color %q: %w", data, err)
	}
	return &color, nil
}

func (s *ImageColorService) extractFromURL(ctx context.Context, imageURL string) (color *domain.RGBColor, err error) {
	// prominentcolor panics on some degenerate images
	defer func() {
		if rec := recover(); rec != nil {
			color = nil
			err = fmt.Errorf("panic recovered: %v", rec)
		}
	}()

	parsed, parseErr := url.Parse(imageURL)
	if parseErr != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid image URL: %s", imageURL)
	}

	// SVG can't be decoded as a raster image
	if strings.HasSuffix(strings.ToLower(parsed.Path), ".svg") {
		return nil, fmt.Errorf("SVG images are not supported")
	}

	if s.deps.HTTPClient == nil {
		return nil, fmt.Errorf("no HTTP client configured")
	}

	resp, err := s.deps.HTTPClient.Get(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	img, _, err := image.Decode(io.LimitReader(body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return prominent(img)
}

// prominent runs k-means over the image, first with the default masks that
// drop near-white and near-black pixels, then without masks
func prominent(img image.Image) (*domain.RGBColor, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has empty bounds")
	}

	nrgba := image.NewNRGBA(bounds)
	draw.Draw(nrgba, bounds, img, bounds.Min, draw.Src)

	colors, err := prominentcolor.KmeansWithAll(
		prominentcolor.ArgumentDefault,
		nrgba,
		prominentcolor.DefaultK,
		1,
		prominentcolor.GetDefaultMasks(),
	)
	if err != nil || len(colors) == 0 {
		colors, err = prominentcolor.KmeansWithAll(
			prominentcolor.ArgumentDefault,
			nrgba,
			prominentcolor.DefaultK,
			1,
			nil,
		)
		if err != nil || len(colors) == 0 {
			return nil, fmt.Errorf("no colors extracted from image")
		}
	}

	return &domain.RGBColor{
		R: uint8(colors[0].Color.R),
		G: uint8(colors[0].Color.G),
		B: uint8(colors[0].Color.B),
	}, nil
}

func (s *ImageColorService) logDebug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}
