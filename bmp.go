package main

import (
	"encoding/binary"
	"fmt"
	"math"
)

// BMP header field offsets. The file header (14 bytes) is followed by a
// BITMAPINFOHEADER (40 bytes); everything not listed stays zero.
const (
	bmpHeaderSize   = 54
	bmpInfoSize     = 40
	bmpBitsPerPixel = 32

	offSignature  = 0
	offFileSize   = 2
	offPixelStart = 10
	offInfoSize   = 14
	offWidth      = 18
	offHeight     = 22
	offPlanes     = 26
	offBitCount   = 28
	offImageSize  = 34

	magicBMP = "BM"
)

// BMPAdapter stores a grid as an uncompressed 32-bit BMP.
//
// Rows are written top-down in grid order with bytes in R,G,B,A order.
// Standard readers expect bottom-up BGRA, so they will show the picture
// flipped and with swapped channels; only Read is guaranteed to
// recover the grid exactly.
type BMPAdapter struct{}

func (BMPAdapter) Ext() string { return ".bmp" }

// Write returns the 54-byte header followed by the raw grid bytes.
func (BMPAdapter) Write(g *PixelGrid) ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	imageSize := uint64(len(g.Pix))
	fileSize := bmpHeaderSize + imageSize
	if fileSize > math.MaxUint32 || uint64(g.Width) > math.MaxInt32 || uint64(g.Height) > math.MaxInt32 {
		return nil, fmt.Errorf("bmp: %dx%d grid does not fit a BMP header", g.Width, g.Height)
	}

	out := make([]byte, fileSize)
	copy(out[offSignature:], magicBMP)
	binary.LittleEndian.PutUint32(out[offFileSize:], uint32(fileSize))
	binary.LittleEndian.PutUint32(out[offPixelStart:], bmpHeaderSize)
	binary.LittleEndian.PutUint32(out[offInfoSize:], bmpInfoSize)
	binary.LittleEndian.PutUint32(out[offWidth:], uint32(g.Width))
	binary.LittleEndian.PutUint32(out[offHeight:], uint32(g.Height))
	binary.LittleEndian.PutUint16(out[offPlanes:], 1)
	binary.LittleEndian.PutUint16(out[offBitCount:], bmpBitsPerPixel)
	binary.LittleEndian.PutUint32(out[offImageSize:], uint32(imageSize))

	copy(out[bmpHeaderSize:], g.Pix)
	return out, nil
}

// Read extracts the grid from a BMP produced by Write. Only the width,
// height and pixel offset fields are trusted.
func (BMPAdapter) Read(b []byte) (*PixelGrid, error) {
	if len(b) < bmpHeaderSize {
		return nil, fmt.Errorf("%d bytes, need at least %d: %w", len(b), bmpHeaderSize, ErrInvalidHeader)
	}
	if string(b[offSignature:offSignature+2]) != magicBMP {
		return nil, fmt.Errorf("signature %q: %w", b[offSignature:offSignature+2], ErrInvalidHeader)
	}

	width := int32(binary.LittleEndian.Uint32(b[offWidth:]))
	height := int32(binary.LittleEndian.Uint32(b[offHeight:]))
	pixelStart := binary.LittleEndian.Uint32(b[offPixelStart:])
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("dimensions %dx%d: %w", width, height, ErrInvalidHeader)
	}

	// 64-bit math: width*height*4 can exceed 32 bits for hostile headers
	imageSize := uint64(width) * uint64(height) * bytesPerPixel
	if uint64(pixelStart)+imageSize > uint64(len(b)) {
		return nil, fmt.Errorf("%dx%d pixels at offset %d exceed %d bytes: %w",
			width, height, pixelStart, len(b), ErrPixelDataOutOfRange)
	}

	g := &PixelGrid{
		Pix:    make([]byte, imageSize),
		Width:  int(width),
		Height: int(height),
	}
	stride := g.Stride()
	for y := 0; y < g.Height; y++ {
		row := int(pixelStart) + y*stride
		copy(g.Pix[y*stride:(y+1)*stride], b[row:row+stride])
	}
	return g, nil
}
