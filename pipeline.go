package main

import (
	"fmt"
	"path/filepath"
)

// Adapter moves a pixel grid in and out of one image container format.
type Adapter interface {
	Write(g *PixelGrid) ([]byte, error)
	Read(b []byte) (*PixelGrid, error)
	// Ext is the file extension of the container, including the dot.
	Ext() string
}

// Encoder turns a file into an image container.
type Encoder struct {
	Adapter Adapter
}

func NewEncoder(a Adapter) *Encoder {
	return &Encoder{Adapter: a}
}

// Encode frames content with its name and extension and returns the
// container bytes.
func (e *Encoder) Encode(content []byte, name, ext string) ([]byte, error) {
	frame, err := BuildFrame(content, name, ext)
	if err != nil {
		return nil, err
	}

	w, h := ComputeDimensions(len(frame))
	grid, err := Pack(frame, w, h)
	if err != nil {
		return nil, err
	}
	return e.Adapter.Write(grid)
}

// EncodeFile encodes inPath and writes <basename><adapter ext> into
// outDir. It returns the path written.
func (e *Encoder) EncodeFile(inPath, outDir string) (string, error) {
	content, err := readFile(inPath)
	if err != nil {
		return "", err
	}

	name, ext := SplitFileName(inPath)
	enc, err := e.Encode(content, name, ext)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(outDir, name+e.Adapter.Ext())
	if err := writeFileAtomic(outPath, enc); err != nil {
		return "", err
	}
	return outPath, nil
}

// Decoder recovers a file from an image container.
type Decoder struct {
	Adapter Adapter
}

func NewDecoder(a Adapter) *Decoder {
	return &Decoder{Adapter: a}
}

// Decode extracts the frame carried by container.
func (d *Decoder) Decode(container []byte) (*Frame, error) {
	grid, err := d.Adapter.Read(container)
	if err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	return ParseFrame(Unpack(grid))
}

// DecodeFile decodes inPath and writes the recovered file, named
// <name>.<ext>, into outDir. It returns the path written.
func (d *Decoder) DecodeFile(inPath, outDir string) (string, error) {
	container, err := readFile(inPath)
	if err != nil {
		return "", err
	}

	frame, err := d.Decode(container)
	if err != nil {
		return "", fmt.Errorf("%s: %w", inPath, err)
	}

	fileName := frame.FileName()
	if err := checkOutputName(fileName); err != nil {
		return "", err
	}

	outPath := filepath.Join(outDir, fileName)
	if err := writeFileAtomic(outPath, frame.Content); err != nil {
		return "", err
	}
	return outPath, nil
}
