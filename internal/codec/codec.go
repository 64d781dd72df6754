// Package codec implements the compression transport applied to every
// stored object. The stream format is zlib (RFC 1950), so stores written by
// gogit stay readable by any tool that understands loose git objects.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// DefaultLevel selects the compressor's default speed/size trade-off.
const DefaultLevel = zlib.DefaultCompression

// DecodeErrorKind classifies a decompression failure.
type DecodeErrorKind int

const (
	// Corrupt means the input is not a valid zlib stream.
	Corrupt DecodeErrorKind = iota
	// Truncated means the stream ended before it was complete.
	Truncated
)

func (k DecodeErrorKind) String() string {
	switch k {
	case Corrupt:
		return "corrupt"
	case Truncated:
		return "truncated"
	default:
		return fmt.Sprintf("DecodeErrorKind(%d)", int(k))
	}
}

// DecodeError is returned by Decode when the input cannot be decompressed.
type DecodeError struct {
	Kind DecodeErrorKind
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s compressed stream: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Codec compresses and decompresses whole byte sequences.
type Codec struct {
	level int
}

// New returns a Codec writing at the given zlib level (-1..9).
func New(level int) (*Codec, error) {
	if level < zlib.DefaultCompression || level > zlib.BestCompression {
		return nil, fmt.Errorf("invalid compression level %d", level)
	}
	return &Codec{level: level}, nil
}

// Default returns a Codec using the default compression level.
func Default() *Codec {
	return &Codec{level: DefaultLevel}
}

// Level reports the configured compression level.
func (c *Codec) Level() int {
	return c.level
}

// Encode compresses data. Only round-trip fidelity is guaranteed,
// not bit-exact output across levels or library versions.
func (c *Codec) Encode(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer, err := zlib.NewWriterLevel(&buffer, c.level)
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to compress data: %w", err)
	}

	// Close flushes buffered data and writes the checksum trailer
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush compressor: %w", err)
	}

	return buffer.Bytes(), nil
}

// Decode decompresses a complete zlib stream.
func (c *Codec) Decode(data []byte) (out []byte, err error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, classify(err)
	}
	defer func() {
		// Close repeats any read error; only report it when reading succeeded
		if closeErr := reader.Close(); closeErr != nil && err == nil {
			out, err = nil, classify(closeErr)
		}
	}()

	out, err = io.ReadAll(reader)
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func classify(err error) *DecodeError {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return &DecodeError{Kind: Truncated, Err: err}
	}
	return &DecodeError{Kind: Corrupt, Err: err}
}
