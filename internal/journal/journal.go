// Package journal reads and writes newline-delimited JSON records: operation
// scripts on the way in, result records on the way out.
package journal

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Writer appends one JSON document per line.
type Writer struct {
	w    *bufio.Writer
	file *os.File
}

// Create truncates or creates path and returns a Writer on it.
func Create(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &Writer{w: bufio.NewWriter(file), file: file}, nil
}

// NewWriter wraps an arbitrary io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteRecord encodes v on its own line.
func (w *Writer) WriteRecord(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// Close flushes buffered records and, for files, syncs and closes them.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}
	if w.file == nil {
		return nil
	}
	if err := w.file.Sync(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// ReplayFile opens path and feeds it to Replay.
func ReplayFile(ctx context.Context, path string, applyFunc func(line []byte) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return Replay(ctx, file, applyFunc)
}

// MaxLineSize is the longest script line Replay accepts.
const MaxLineSize = 16 << 20

// Replay calls applyFunc for every non-blank line of r that does not start
// with '#'. It stops at the first error, which is returned with its line
// number, or when ctx is cancelled.
func Replay(ctx context.Context, r io.Reader, applyFunc func(line []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if err := applyFunc(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("line %d: %w", lineNo+1, err)
	}
	return nil
}
