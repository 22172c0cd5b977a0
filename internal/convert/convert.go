// Package convert turns a PDF held in memory into an ordered sequence of
// size- and quality-bounded JPEG page images for vision-capable models.
package convert

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"

	"github.com/stevennight/ai-debug-tool/internal/metrics"
	"github.com/stevennight/ai-debug-tool/internal/models"
)

// Options bound the rendered output.
type Options struct {
	MaxDimensionPx int
	DPI            int
	JPEGQuality    int
}

func DefaultOptions() Options {
	return Options{
		MaxDimensionPx: 2048,
		DPI:            200,
		JPEGQuality:    85,
	}
}

type Converter struct {
	rasterizer PageRasterizer
	opts       Options
	log        logrus.FieldLogger
}

func New(rasterizer PageRasterizer, opts Options, log logrus.FieldLogger) *Converter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Converter{
		rasterizer: rasterizer,
		opts:       opts,
		log:        log,
	}
}

// Convert renders every page of the document, downscales pages whose longer
// side exceeds MaxDimensionPx (never upscaling) and re-encodes them as JPEG
// flattened onto a white background. The input bytes are not retained.
func (c *Converter) Convert(ctx context.Context, pdf []byte) ([]models.PageImage, error) {
	start := time.Now()

	raw, err := c.rasterizer.Rasterize(ctx, pdf, c.opts.DPI)
	if err != nil {
		metrics.PDFConvert("error", time.Since(start))
		if errors.Is(err, ErrRasterizerUnavailable) {
			return nil, &ConversionError{Reason: ReasonMissingDependency, Err: err}
		}
		return nil, &ConversionError{Reason: ReasonCorruptInput, Err: err}
	}
	if len(raw) == 0 {
		metrics.PDFConvert("error", time.Since(start))
		return nil, &ConversionError{Reason: ReasonEmptyDocument}
	}

	pages := make([]models.PageImage, 0, len(raw))
	for i, img := range raw {
		encoded, w, h, err := c.encodePage(img)
		if err != nil {
			metrics.PDFConvert("error", time.Since(start))
			return nil, &ConversionError{Reason: ReasonCorruptInput, Err: err}
		}
		pages = append(pages, models.PageImage{
			Index:  i,
			Data:   encoded,
			Width:  w,
			Height: h,
			MIME:   "image/jpeg",
		})
	}

	metrics.PDFConvert("success", time.Since(start))
	metrics.PDFPages(len(pages))
	c.log.WithFields(logrus.Fields{
		"pages":       len(pages),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("pdf converted")

	return pages, nil
}

func (c *Converter) encodePage(src image.Image) ([]byte, int, int, error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tw, th := targetSize(w, h, c.opts.MaxDimensionPx)

	// White base flattens any alpha channel; JPEG has no transparency.
	flat := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.Draw(flat, flat.Bounds(), image.White, image.Point{}, xdraw.Src)
	if tw == w && th == h {
		xdraw.Draw(flat, flat.Bounds(), src, bounds.Min, xdraw.Over)
	} else {
		xdraw.CatmullRom.Scale(flat, flat.Bounds(), src, bounds, xdraw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: c.opts.JPEGQuality}); err != nil {
		return nil, 0, 0, err
	}
	return buf.Bytes(), tw, th, nil
}

// targetSize shrinks (w, h) preserving aspect ratio so the longer side equals
// max. Images already within bounds keep their dimensions.
func targetSize(w, h, max int) (int, int) {
	if max <= 0 || (w <= max && h <= max) {
		return w, h
	}
	if w >= h {
		return max, atLeastOne(math.Round(float64(h) * float64(max) / float64(w)))
	}
	return atLeastOne(math.Round(float64(w) * float64(max) / float64(h))), max
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}
