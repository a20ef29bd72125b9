package main

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestComputeDimensions(t *testing.T) {
	for _, tc := range []struct {
		frameLen int
		w, h     int
	}{
		{0, 1, 1},
		{1, 1, 1},
		{4, 1, 1},
		{5, 2, 1},
		{15, 2, 2},
		{16, 2, 2},
		{17, 3, 2},
		{36, 3, 3},
		{37, 4, 3},
		{4 * 1000 * 1000, 1000, 1000},
		{4*1000*1000 + 1, 1001, 1000},
	} {
		w, h := ComputeDimensions(tc.frameLen)
		if w != tc.w || h != tc.h {
			t.Errorf("ComputeDimensions(%d) = %dx%d, want %dx%d", tc.frameLen, w, h, tc.w, tc.h)
		}
	}
}

func TestComputeDimensions_Invariants(t *testing.T) {
	for n := 0; n < 20000; n++ {
		w, h := ComputeDimensions(n)
		pixels := (n + 3) / 4
		if pixels == 0 {
			pixels = 1
		}
		if w*h*4 < n {
			t.Fatalf("n=%d: %dx%d too small", n, w, h)
		}
		if w*w < pixels || (w-1)*(w-1) >= pixels {
			t.Fatalf("n=%d: width %d is not ceil(sqrt(%d))", n, w, pixels)
		}
		if h != (pixels+w-1)/w {
			t.Fatalf("n=%d: height %d", n, h)
		}
		if w2, h2 := ComputeDimensions(n); w2 != w || h2 != h {
			t.Fatalf("n=%d: not deterministic", n)
		}
	}
}

func TestPackUnpack(t *testing.T) {
	frame := []byte("0123456789abcdefXYZ")
	w, h := ComputeDimensions(len(frame))
	g, err := Pack(frame, w, h)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	// row-major, R,G,B,A per cell: cell (1,0) holds bytes 4..7
	if got := g.NRGBA().NRGBAAt(1, 0); got != (color.NRGBA{'4', '5', '6', '7'}) {
		t.Fatalf("cell (1,0) = %v", got)
	}

	for i := len(frame); i < len(g.Pix); i++ {
		if g.Pix[i] != 0 {
			t.Fatalf("padding byte %d = %d, want 0", i, g.Pix[i])
		}
	}

	flat := Unpack(g)
	if len(flat) != w*h*4 {
		t.Fatalf("Unpack length %d, want %d", len(flat), w*h*4)
	}
	if !bytes.Equal(flat[:len(frame)], frame) {
		t.Fatalf("Unpack prefix mismatch")
	}
}

func TestPack_GridTooSmall(t *testing.T) {
	if _, err := Pack(make([]byte, 17), 2, 2); err == nil {
		t.Fatalf("expected error for 17 bytes in 2x2 grid")
	}
	if _, err := Pack(nil, 0, 1); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestGridFromImage_Offset(t *testing.T) {
	// a sub-image has a non-zero origin and a parent stride
	parent := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range parent.Pix {
		parent.Pix[i] = byte(i)
	}
	sub := parent.SubImage(image.Rect(1, 1, 3, 3))

	g := GridFromImage(sub)
	if g.Width != 2 || g.Height != 2 {
		t.Fatalf("got %dx%d", g.Width, g.Height)
	}
	if got, want := g.NRGBA().NRGBAAt(0, 0), parent.NRGBAAt(1, 1); got != want {
		t.Fatalf("origin cell %v, want %v", got, want)
	}
	if got, want := g.NRGBA().NRGBAAt(1, 1), parent.NRGBAAt(2, 2); got != want {
		t.Fatalf("last cell %v, want %v", got, want)
	}
}

func TestGridFromImage_Converts(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(1, 0, color.Gray{Y: 200})

	g := GridFromImage(gray)
	want := []byte{0, 0, 0, 255, 200, 200, 200, 255}
	if !bytes.Equal(g.Pix, want) {
		t.Fatalf("got %v want %v", g.Pix, want)
	}
}
