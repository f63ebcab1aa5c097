package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"timetrace/tef"
)

// isBinaryPath reports whether the path names a msgpack snapshot rather
// than the JSON wire form.
func isBinaryPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mpack", ".msgpack":
		return true
	}
	return false
}

// readTrace loads a trace document, picking the codec by extension.
func readTrace(path string) (*tef.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if isBinaryPath(path) {
		return tef.DecodeBinary(f)
	}
	return tef.Decode(f)
}

// writeTrace stores a trace document, picking the codec by extension.
func writeTrace(path string, doc *tef.File) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace %q: %w", path, err)
	}
	if isBinaryPath(path) {
		err = tef.EncodeBinary(f, doc)
	} else {
		err = tef.Encode(f, doc)
	}
	if err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
