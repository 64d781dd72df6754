package objects

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KostasZigo/gogitstore/internal/constants"
)

// Kind names the type of a stored object as written in its header.
type Kind string

const (
	KindBlob Kind = "blob"
	KindTree Kind = "tree"
)

// IsValid reports whether the kind is one the store understands.
func (k Kind) IsValid() bool {
	switch k {
	case KindBlob, KindTree:
		return true
	default:
		return false
	}
}

// FormatErrorKind classifies an envelope failure.
type FormatErrorKind int

const (
	// MissingHeader means no NUL byte terminates the header.
	MissingHeader FormatErrorKind = iota
	// MalformedHeader means the header lacks a space or carries an invalid size.
	MalformedHeader
	// UnknownKind means the header names a kind other than blob or tree.
	UnknownKind
	// SizeMismatch means the declared size differs from the payload length (strict mode only).
	SizeMismatch
	// NotATree means a tree was expected but another kind was found.
	NotATree
)

func (k FormatErrorKind) String() string {
	switch k {
	case MissingHeader:
		return "missing header"
	case MalformedHeader:
		return "malformed header"
	case UnknownKind:
		return "unknown kind"
	case SizeMismatch:
		return "size mismatch"
	case NotATree:
		return "not a tree"
	default:
		return fmt.Sprintf("FormatErrorKind(%d)", int(k))
	}
}

// FormatError reports an envelope that cannot be parsed.
type FormatError struct {
	Kind   FormatErrorKind
	Header string
	Detail string
}

func (e *FormatError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invalid object format: %s", e.Kind)
	}
	return fmt.Sprintf("invalid object format: %s: %s", e.Kind, e.Detail)
}

// Envelope is the decoded "<kind> <size>\0<payload>" record.
type Envelope struct {
	Kind    Kind
	Size    int
	Payload []byte
}

// Header returns "<kind> <size>\0".
func Header(kind Kind, size int) string {
	return fmt.Sprintf("%s %d\x00", kind, size)
}

// Wrap prepends the header to payload.
func Wrap(kind Kind, payload []byte) []byte {
	header := Header(kind, len(payload))
	data := make([]byte, 0, len(header)+len(payload))
	data = append(data, header...)
	return append(data, payload...)
}

// Unwrap splits data at the first NUL and parses the header.
// The declared size is not compared with the payload length; see UnwrapStrict.
func Unwrap(data []byte) (*Envelope, error) {
	nullByteIndex := bytes.IndexByte(data, constants.NullByte)
	if nullByteIndex == -1 {
		return nil, &FormatError{Kind: MissingHeader, Detail: "no null byte found"}
	}

	header := string(data[:nullByteIndex])
	kindText, sizeText, found := strings.Cut(header, string(constants.SpaceByte))
	if !found {
		return nil, &FormatError{Kind: MalformedHeader, Header: header, Detail: fmt.Sprintf("no space in header %q", header)}
	}

	kind := Kind(kindText)
	if !kind.IsValid() {
		return nil, &FormatError{Kind: UnknownKind, Header: header, Detail: fmt.Sprintf("%q", kindText)}
	}

	size, err := strconv.ParseUint(sizeText, 10, 64)
	if err != nil || size > math.MaxInt {
		return nil, &FormatError{Kind: MalformedHeader, Header: header, Detail: fmt.Sprintf("invalid size %q", sizeText)}
	}

	return &Envelope{
		Kind:    kind,
		Size:    int(size),
		Payload: data[nullByteIndex+1:],
	}, nil
}

// UnwrapStrict is Unwrap plus a check that the declared size matches the payload.
func UnwrapStrict(data []byte) (*Envelope, error) {
	envelope, err := Unwrap(data)
	if err != nil {
		return nil, err
	}

	if envelope.Size != len(envelope.Payload) {
		return nil, &FormatError{
			Kind:   SizeMismatch,
			Header: fmt.Sprintf("%s %d", envelope.Kind, envelope.Size),
			Detail: fmt.Sprintf("header declares %d bytes, payload has %d", envelope.Size, len(envelope.Payload)),
		}
	}

	return envelope, nil
}
