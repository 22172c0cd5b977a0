package convert

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// PageRasterizer renders PDF bytes into raw page images at the given DPI,
// one image per page in page order.
type PageRasterizer interface {
	Rasterize(ctx context.Context, pdf []byte, dpi int) ([]image.Image, error)
}

// fitzRasterizer renders pages in memory through MuPDF. It never touches
// the filesystem.
type fitzRasterizer struct{}

func NewFitzRasterizer() PageRasterizer {
	return fitzRasterizer{}
}

func (fitzRasterizer) Rasterize(ctx context.Context, pdf []byte, dpi int) ([]image.Image, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	defer doc.Close()

	total := doc.NumPage()
	pages := make([]image.Image, 0, total)
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrUnreadableDocument, i, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
