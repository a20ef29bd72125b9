package main

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Frame layout (little-endian):
//
//	content_length uint32
//	ext_length     uint8, ext bytes
//	name_length    uint8, name bytes
//	content        content_length bytes
const (
	frameFixedSize = 4 + 1 + 1
	maxFieldLen    = math.MaxUint8
)

// Frame is the file carried inside a pixel grid.
type Frame struct {
	Name    string
	Ext     string
	Content []byte
}

// Len returns the serialized length of f.
func (f *Frame) Len() int {
	return frameFixedSize + len(f.Ext) + len(f.Name) + len(f.Content)
}

// FileName returns name.ext, or just name when the extension is empty.
func (f *Frame) FileName() string {
	if f.Ext == "" {
		return f.Name
	}
	return f.Name + "." + f.Ext
}

// BuildFrame serializes content, name and ext into a frame.
// Names and extensions longer than 255 bytes are rejected, never clipped.
func BuildFrame(content []byte, name, ext string) ([]byte, error) {
	if len(ext) > maxFieldLen {
		return nil, fmt.Errorf("extension is %d bytes, max %d: %w", len(ext), maxFieldLen, ErrFieldTooLong)
	}
	if len(name) > maxFieldLen {
		return nil, fmt.Errorf("name is %d bytes, max %d: %w", len(name), maxFieldLen, ErrFieldTooLong)
	}
	if uint64(len(content)) > math.MaxUint32 {
		return nil, fmt.Errorf("content is %d bytes, max %d: %w", len(content), uint64(math.MaxUint32), ErrFieldTooLong)
	}

	buf := make([]byte, 0, frameFixedSize+len(ext)+len(name)+len(content))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(content)))
	buf = append(buf, byte(len(ext)))
	buf = append(buf, ext...)
	buf = append(buf, byte(len(name)))
	buf = append(buf, name...)
	buf = append(buf, content...)
	return buf, nil
}

// ParseFrame reads a frame from the start of buf. Bytes after the
// content are padding and ignored.
func ParseFrame(buf []byte) (*Frame, error) {
	pos := 0
	need := func(n int, label string) error {
		if n > len(buf)-pos {
			return fmt.Errorf("%s needs %d bytes at offset %d, have %d: %w", label, n, pos, len(buf)-pos, ErrTruncatedFrame)
		}
		return nil
	}

	if err := need(4, "content length"); err != nil {
		return nil, err
	}
	contentLen := binary.LittleEndian.Uint32(buf[pos:])
	pos += 4

	if err := need(1, "extension length"); err != nil {
		return nil, err
	}
	extLen := int(buf[pos])
	pos++
	if err := need(extLen, "extension"); err != nil {
		return nil, err
	}
	ext := string(buf[pos : pos+extLen])
	pos += extLen

	if err := need(1, "name length"); err != nil {
		return nil, err
	}
	nameLen := int(buf[pos])
	pos++
	if err := need(nameLen, "name"); err != nil {
		return nil, err
	}
	name := string(buf[pos : pos+nameLen])
	pos += nameLen

	// compare in uint64 so a huge declared length can't overflow int on 32-bit
	if uint64(contentLen) > uint64(len(buf)-pos) {
		return nil, fmt.Errorf("content needs %d bytes at offset %d, have %d: %w", contentLen, pos, len(buf)-pos, ErrTruncatedFrame)
	}
	content := make([]byte, contentLen)
	copy(content, buf[pos:])

	return &Frame{Name: name, Ext: ext, Content: content}, nil
}
