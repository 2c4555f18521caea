// Package recorder writes simulation frames as zstd-compressed JSON lines
// and reads them back.
package recorder

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Recorder appends one JSON document per Record call to a zstd stream.
// It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	zw     *zstd.Encoder
	enc    *json.Encoder
	closer io.Closer
	n      int
}

// New returns a recorder writing to w. Close must be called to flush the
// compressed stream; it does not close w.
func New(w io.Writer) (*Recorder, error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}
	return &Recorder{zw: zw, enc: json.NewEncoder(zw)}, nil
}

// Create records into a new file at path, truncating any existing one.
// Close also closes the file.
func Create(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}
	r, err := New(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Record appends v.
func (r *Recorder) Record(v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.zw == nil {
		return fmt.Errorf("recorder: closed")
	}
	if err := r.enc.Encode(v); err != nil {
		return fmt.Errorf("recorder: record %d: %w", r.n, err)
	}
	r.n++
	return nil
}

// Count returns the number of records written so far.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

// Close flushes the stream and closes the underlying file, if any.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.zw == nil {
		return nil
	}
	err := r.zw.Close()
	r.zw = nil
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Reader reads records written by a Recorder.
type Reader struct {
	zr  *zstd.Decoder
	dec *json.Decoder
}

// NewReader returns a reader over a recorded stream.
func NewReader(r io.Reader) (*Reader, error) {
	zr, err := zstd.NewReader(bufio.NewReader(r), zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}
	return &Reader{zr: zr, dec: json.NewDecoder(zr)}, nil
}

// Next decodes the next record into v. It returns io.EOF after the last
// record.
func (r *Reader) Next(v any) error {
	err := r.dec.Decode(v)
	if err == io.EOF {
		return io.EOF
	}
	if err != nil {
		return fmt.Errorf("recorder: %w", err)
	}
	return nil
}

// Close releases the decoder.
func (r *Reader) Close() {
	r.zr.Close()
}
