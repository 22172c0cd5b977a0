package convert

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// popplerRasterizer shells out to pdftoppm. The temp workdir is removed
// before Rasterize returns.
type popplerRasterizer struct{}

func NewPopplerRasterizer() PageRasterizer {
	return popplerRasterizer{}
}

func (popplerRasterizer) Rasterize(ctx context.Context, pdf []byte, dpi int) ([]image.Image, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, fmt.Errorf("%w: pdftoppm not found in PATH", ErrRasterizerUnavailable)
	}

	workDir, err := os.MkdirTemp("", "aidebug-pdf-")
	if err != nil {
		return nil, fmt.Errorf("create temp workdir: %w", err)
	}
	defer os.RemoveAll(workDir)

	input := filepath.Join(workDir, "input.pdf")
	if err := os.WriteFile(input, pdf, 0o600); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	prefix := filepath.Join(workDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", "-jpeg", "-r", strconv.Itoa(dpi), input, prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: pdftoppm: %v: %s", ErrUnreadableDocument, err, strings.TrimSpace(stderr.String()))
	}

	matches, err := filepath.Glob(prefix + "-*.jpg")
	if err != nil {
		return nil, err
	}
	sort.Slice(matches, func(i, j int) bool {
		return pageNumberFromName(matches[i]) < pageNumberFromName(matches[j])
	})

	pages := make([]image.Image, 0, len(matches))
	for _, path := range matches {
		img, err := loadJPEG(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableDocument, filepath.Base(path), err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}

func loadJPEG(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return jpeg.Decode(file)
}

// pdftoppm names output files page-<n>.jpg with 1-based, possibly
// zero-padded page numbers.
func pageNumberFromName(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), ".jpg")
	idx := strings.LastIndex(base, "-")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(base[idx+1:])
	if err != nil {
		return 0
	}
	return n
}
