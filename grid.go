package main

import (
	"fmt"
	"image"
	"image/draw"
	"math"
)

const bytesPerPixel = 4

// PixelGrid is a row-major buffer of width*height cells, 4 bytes each.
// The channels (R,G,B,A in that order) are opaque data bytes.
type PixelGrid struct {
	Pix    []byte
	Width  int
	Height int
}

// Stride returns the number of bytes per row.
func (g *PixelGrid) Stride() int { return g.Width * bytesPerPixel }

// Validate checks that the buffer length matches the dimensions.
func (g *PixelGrid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("invalid grid dimensions %dx%d", g.Width, g.Height)
	}
	if len(g.Pix) != g.Width*g.Height*bytesPerPixel {
		return fmt.Errorf("grid %dx%d expects %d bytes, has %d", g.Width, g.Height, g.Width*g.Height*bytesPerPixel, len(g.Pix))
	}
	return nil
}

// NRGBA returns an image sharing g's buffer. NRGBA is non-premultiplied,
// so the color bytes are kept as-is whatever the alpha byte is.
func (g *PixelGrid) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    g.Pix,
		Stride: g.Stride(),
		Rect:   image.Rect(0, 0, g.Width, g.Height),
	}
}

// GridFromImage copies img into a new grid with origin (0,0).
func GridFromImage(img image.Image) *PixelGrid {
	b := img.Bounds()
	src, ok := img.(*image.NRGBA)
	if !ok {
		dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		src = dst
		b = dst.Bounds()
	}

	g := &PixelGrid{
		Pix:    make([]byte, b.Dx()*b.Dy()*bytesPerPixel),
		Width:  b.Dx(),
		Height: b.Dy(),
	}
	stride := g.Stride()
	for y := 0; y < g.Height; y++ {
		off := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(g.Pix[y*stride:(y+1)*stride], src.Pix[off:off+stride])
	}
	return g
}

// ComputeDimensions returns the near-square grid that holds frameLen
// bytes: width = ceil(sqrt(pixels)), height = ceil(pixels/width).
// An empty frame still gets a 1x1 grid.
func ComputeDimensions(frameLen int) (w, h int) {
	pixels := (frameLen + bytesPerPixel - 1) / bytesPerPixel
	if pixels < 1 {
		pixels = 1
	}

	// float sqrt can be off by one for large values; settle on the exact ceiling
	w = int(math.Sqrt(float64(pixels)))
	for w*w < pixels {
		w++
	}
	for w > 1 && (w-1)*(w-1) >= pixels {
		w--
	}
	h = (pixels + w - 1) / w
	return w, h
}

// Pack writes frame into a w x h grid, row-major, 4 bytes per cell.
// Every byte past the end of frame is zero.
func Pack(frame []byte, w, h int) (*PixelGrid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions %dx%d", w, h)
	}
	size := w * h * bytesPerPixel
	if len(frame) > size {
		return nil, fmt.Errorf("%d bytes into %dx%d: %w", len(frame), w, h, ErrGridTooSmall)
	}

	pix := make([]byte, size)
	copy(pix, frame)
	return &PixelGrid{Pix: pix, Width: w, Height: h}, nil
}

// Unpack reads the grid back into a flat buffer of width*height*4 bytes
// in the same order Pack wrote it.
func Unpack(g *PixelGrid) []byte {
	out := make([]byte, 0, g.Width*g.Height*bytesPerPixel)
	stride := g.Stride()
	for y := 0; y < g.Height; y++ {
		out = append(out, g.Pix[y*stride:(y+1)*stride]...)
	}
	return out
}
