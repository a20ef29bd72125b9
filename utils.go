package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SplitFileName splits the last element of path into base name and
// extension (without the dot). Both '/' and '\' count as separators so
// Windows-style paths split the same way everywhere.
func SplitFileName(path string) (name, ext string) {
	base := path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		base = path[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		return base[:i], base[i+1:]
	}
	return base, ""
}

// checkOutputName rejects recovered names that would leave the output
// directory or that cannot name a regular file.
func checkOutputName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%q: %w", name, ErrUnsafeName)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%q: %w", name, ErrUnsafeName)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, so a failed write never leaves a partial output file.
func writeFileAtomic(path string, data []byte) (err error) {
	out, err := os.CreateTemp(filepath.Dir(path), ".flimage-*")
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	tmp := out.Name()
	defer func() {
		if err != nil {
			out.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = out.Write(data); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err = out.Chmod(0o644); err != nil {
		return &IOError{Op: "chmod", Path: path, Err: err}
	}
	if err = out.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	if err = os.Rename(tmp, path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
