// Package fileio is the file-access layer around the merge engine. It owns
// everything the engine deliberately does not: reading files, splitting
// bytes into terminator-preserving lines, binary detection, and atomic
// writes with optional backup. The engine only ever sees plain line slices.
package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrBinary reports that a file looks like binary content and cannot be
// merged line-wise.
var ErrBinary = errors.New("binary file")

// binarySniffLen bounds how many leading bytes are inspected for NUL.
const binarySniffLen = 8000

// SplitLines splits data into lines, each keeping its terminator bytes, so
// Join(SplitLines(data)) == data for any input. A final line without a
// terminator is kept as-is; CRLF stays part of its line.
func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}

	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, string(data[start:i+1]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}

// Join concatenates lines back into file content.
func Join(lines []string) []byte {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
	}
	return buf.Bytes()
}

// IsBinary reports whether data looks like binary content, using the usual
// NUL-byte sniff over the leading bytes.
func IsBinary(data []byte) bool {
	sniff := data
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}

// ReadLines reads the file at path and splits it into terminator-preserving
// lines. Binary-looking content is rejected with ErrBinary.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if IsBinary(data) {
		return nil, fmt.Errorf("read %s: %w", path, ErrBinary)
	}
	return SplitLines(data), nil
}

// WriteAtomic writes data to path via a temp file and rename, so readers
// never observe a partial file. With backup set, an existing file is first
// copied to path+".orig".
func WriteAtomic(path string, data []byte, backup bool) error {
	if backup {
		if old, err := os.ReadFile(path); err == nil {
			if err := os.WriteFile(path+".orig", old, 0o644); err != nil {
				return fmt.Errorf("write %s: backup: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("write %s: backup: %w", path, err)
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".weave-tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: tmpfile: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: write: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: close: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: rename: %w", path, err)
	}
	return nil
}
