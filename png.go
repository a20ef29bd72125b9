package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image/png"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"
)

const (
	pngColorTypeRGBA = 6
	pngBitDepth      = 8
)

var pngSignature = []byte{137, 80, 78, 71, 13, 10, 26, 10}

// PNGAdapter stores a grid as an 8-bit RGBA PNG.
//
// The writer builds the chunks itself so the output only depends on the
// grid and Level. Reading goes through image/png, so any conformant PNG
// with the right pixels is accepted.
type PNGAdapter struct {
	// Level is the zlib compression level for IDAT. Zero selects
	// zlib.BestCompression; use zlib.HuffmanOnly for the fastest output.
	Level int
}

func (PNGAdapter) Ext() string { return ".png" }

func (a PNGAdapter) level() int {
	if a.Level == 0 {
		return zlib.BestCompression
	}
	return a.Level
}

func (a PNGAdapter) Write(g *PixelGrid) ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if uint64(g.Width) > math.MaxInt32 || uint64(g.Height) > math.MaxInt32 {
		return nil, &CodecError{Op: "encode", Err: fmt.Errorf("%dx%d exceeds PNG limits", g.Width, g.Height)}
	}

	idat, err := a.compressScanlines(g)
	if err != nil {
		return nil, &CodecError{Op: "encode", Err: err}
	}

	var out bytes.Buffer
	out.Grow(len(pngSignature) + 3*12 + 13 + len(idat))
	out.Write(pngSignature)
	writePNGChunk(&out, "IHDR", pngIHDR(g.Width, g.Height))
	writePNGChunk(&out, "IDAT", idat)
	writePNGChunk(&out, "IEND", nil)
	return out.Bytes(), nil
}

// compressScanlines prefixes every row with filter type 0 (None) and
// deflates the result into a zlib stream.
func (a PNGAdapter) compressScanlines(g *PixelGrid) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, a.level())
	if err != nil {
		return nil, err
	}

	stride := g.Stride()
	filter := []byte{0}
	for y := 0; y < g.Height; y++ {
		if _, err := zw.Write(filter); err != nil {
			zw.Close()
			return nil, err
		}
		if _, err := zw.Write(g.Pix[y*stride : (y+1)*stride]); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pngIHDR(w, h int) []byte {
	b := make([]byte, 13)
	binary.BigEndian.PutUint32(b[0:], uint32(w))
	binary.BigEndian.PutUint32(b[4:], uint32(h))
	b[8] = pngBitDepth
	b[9] = pngColorTypeRGBA
	// compression, filter and interlace methods are all 0
	return b
}

func writePNGChunk(w io.Writer, chunkType string, data []byte) {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(data)))
	copy(hdr[4:], chunkType)

	crc := crc32.NewIEEE()
	crc.Write(hdr[4:])
	crc.Write(data)

	w.Write(hdr[:])
	w.Write(data)
	w.Write(binary.BigEndian.AppendUint32(nil, crc.Sum32()))
}

func (PNGAdapter) Read(b []byte) (*PixelGrid, error) {
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, &CodecError{Op: "decode", Err: err}
	}

	g := GridFromImage(img)
	if len(g.Pix) < 4 {
		return nil, fmt.Errorf("decoded %d bytes: %w", len(g.Pix), ErrInsufficientData)
	}
	return g, nil
}
