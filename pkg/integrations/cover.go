package integrations

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// CoverProcessor downloads cover art and shrinks it for embedding.
type CoverProcessor struct {
	client    *http.Client
	maxWidth  int
	maxHeight int
	quality   int
}

func NewCoverProcessor(maxWidth, maxHeight int) *CoverProcessor {
	return &CoverProcessor{
		client:    http.DefaultClient,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		quality:   85,
	}
}

// Fetch downloads url and returns a JPEG that fits the configured bounds.
func (p *CoverProcessor) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cover image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status for cover image: %s", resp.Status)
	}

	return p.Process(resp.Body)
}

func (p *CoverProcessor) Process(input io.Reader) ([]byte, error) {
	img, _, err := image.Decode(input)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := p.fit(bounds.Dx(), bounds.Dy())
	if width != bounds.Dx() || height != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// fit scales width x height down to the bounds, keeping the aspect ratio.
func (p *CoverProcessor) fit(width, height int) (int, int) {
	if width <= p.maxWidth && height <= p.maxHeight {
		return width, height
	}

	scale := float64(p.maxWidth) / float64(width)
	if s := float64(p.maxHeight) / float64(height); s < scale {
		scale = s
	}

	w, h := int(float64(width)*scale), int(float64(height)*scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
