package main

import (
	"errors"
	"fmt"
)

var (
	ErrFieldTooLong        = errors.New("flimage: field too long")
	ErrTruncatedFrame      = errors.New("flimage: truncated frame")
	ErrInvalidHeader       = errors.New("bmp: invalid header")
	ErrPixelDataOutOfRange = errors.New("bmp: pixel data out of range")
	ErrInsufficientData    = errors.New("png: insufficient pixel data")
	ErrGridTooSmall        = errors.New("flimage: grid too small for frame")
	ErrUnsafeName          = errors.New("flimage: unsafe output name")
)

// IOError reports a failure opening, reading or writing a file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// CodecError wraps a failure reported by the PNG codec.
type CodecError struct {
	Op  string // "encode" or "decode"
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("png %s: %v", e.Op, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }
