package objects

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/KostasZigo/gogitstore/internal/constants"
)

type FileMode string

const (
	ModeRegularFile FileMode = "100644" // Regular non-executable file
	ModeExecutable  FileMode = "100755" // Executable file
	ModeSymlink     FileMode = "120000" // Symbolic link
	ModeDirectory   FileMode = "40000"  // Directory (tree)
)

func (m FileMode) IsValid() bool {
	switch m {
	case ModeRegularFile, ModeExecutable, ModeSymlink, ModeDirectory:
		return true
	default:
		return false
	}
}

// ObjectKind returns the kind of object an entry with this mode points to.
func (m FileMode) ObjectKind() Kind {
	if m == ModeDirectory {
		return KindTree
	}
	return KindBlob
}

// TreeEntry represents a single entry in a tree object
type TreeEntry struct {
	mode FileMode
	name string
	id   ObjectID
}

// NewTreeEntry validates mode and name. Names are single path components:
// non-empty, without NUL or '/'.
func NewTreeEntry(mode FileMode, name string, id ObjectID) (*TreeEntry, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("invalid file mode: %s", mode)
	}
	if name == "" {
		return nil, fmt.Errorf("invalid entry name: empty")
	}
	if strings.ContainsAny(name, "\x00/") {
		return nil, fmt.Errorf("invalid entry name %q: contains NUL or path separator", name)
	}
	if err := id.Validate(); err != nil {
		return nil, fmt.Errorf("invalid entry %q: %w", name, err)
	}
	return &TreeEntry{
		mode: mode,
		name: name,
		id:   id,
	}, nil
}

func (e TreeEntry) Mode() FileMode {
	return e.mode
}

func (e TreeEntry) Name() string {
	return e.name
}

func (e TreeEntry) ID() ObjectID {
	return e.id
}

func (e TreeEntry) IsDirectory() bool {
	return e.mode == ModeDirectory
}

func (e TreeEntry) IsExecutable() bool {
	return e.mode == ModeExecutable
}

func (e TreeEntry) String() string {
	return fmt.Sprintf("%s %s %s\t%s", e.mode, e.mode.ObjectKind(), e.id, e.name)
}

// SortTreeEntries returns a copy of entries ordered by name, compared byte by byte.
func SortTreeEntries(entries []TreeEntry) []TreeEntry {
	sorted := make([]TreeEntry, len(entries))
	copy(sorted, entries)

	slices.SortStableFunc(sorted, func(a, b TreeEntry) int {
		return strings.Compare(a.name, b.name)
	})

	return sorted
}

// SerializeTree encodes entries, which must already be in canonical order:
// <mode> <name>\0<20-byte binary SHA> , ex:
// 40000 dir1\0[binary SHA for dir1/ tree]
// 100644 file1\0[binary SHA for file1 blob]
func SerializeTree(entries []TreeEntry) []byte {
	var buf bytes.Buffer

	for _, entry := range entries {
		buf.WriteString(string(entry.mode))
		buf.WriteByte(constants.SpaceByte)
		buf.WriteString(entry.name)
		buf.WriteByte(constants.NullByte)

		raw := entry.id.Raw()
		buf.Write(raw[:])
	}

	return buf.Bytes()
}

// TreeParseErrorKind classifies a tree payload failure.
type TreeParseErrorKind int

const (
	// TreeTruncated means a space, NUL or the 20 digest bytes is missing.
	TreeTruncated TreeParseErrorKind = iota
	// TreeInvalidUTF8 means mode or name bytes are not valid text.
	TreeInvalidUTF8
)

func (k TreeParseErrorKind) String() string {
	switch k {
	case TreeTruncated:
		return "truncated"
	case TreeInvalidUTF8:
		return "invalid utf-8"
	default:
		return fmt.Sprintf("TreeParseErrorKind(%d)", int(k))
	}
}

// TreeParseError reports a malformed tree payload.
type TreeParseError struct {
	Kind   TreeParseErrorKind
	Offset int
	Field  string
}

func (e *TreeParseError) Error() string {
	return fmt.Sprintf("invalid tree payload: %s %s at offset %d", e.Kind, e.Field, e.Offset)
}

// ParseTree decodes a tree payload into entries in stored order.
// The payload is scanned as raw bytes: digests may contain NUL, space or
// high-bit bytes and are never interpreted as text.
func ParseTree(payload []byte) ([]TreeEntry, error) {
	entries := []TreeEntry{}
	offset := 0

	for offset < len(payload) {
		spaceIndex := bytes.IndexByte(payload[offset:], constants.SpaceByte)
		if spaceIndex == -1 {
			return nil, &TreeParseError{Kind: TreeTruncated, Offset: offset, Field: "mode"}
		}
		modeBytes := payload[offset : offset+spaceIndex]

		nameStart := offset + spaceIndex + 1
		nullByteIndex := bytes.IndexByte(payload[nameStart:], constants.NullByte)
		if nullByteIndex == -1 {
			return nil, &TreeParseError{Kind: TreeTruncated, Offset: nameStart, Field: "name"}
		}
		nameBytes := payload[nameStart : nameStart+nullByteIndex]

		digestStart := nameStart + nullByteIndex + 1
		digestEnd := digestStart + constants.HashByteLength
		if digestEnd > len(payload) {
			return nil, &TreeParseError{Kind: TreeTruncated, Offset: digestStart, Field: "digest"}
		}

		if !utf8.Valid(modeBytes) {
			return nil, &TreeParseError{Kind: TreeInvalidUTF8, Offset: offset, Field: "mode"}
		}
		if !utf8.Valid(nameBytes) {
			return nil, &TreeParseError{Kind: TreeInvalidUTF8, Offset: nameStart, Field: "name"}
		}

		entries = append(entries, TreeEntry{
			mode: FileMode(modeBytes),
			name: string(nameBytes),
			id:   ObjectIDFromDigest([constants.HashByteLength]byte(payload[digestStart:digestEnd])),
		})

		offset = digestEnd
	}

	return entries, nil
}

// Tree represents a directory snapshot object
type Tree struct {
	entries []TreeEntry
	id      ObjectID
}

// NewTree creates a tree object from entries in any order.
// Names must be unique within the tree.
func NewTree(treeEntries []TreeEntry) *Tree {
	entries := SortTreeEntries(treeEntries)

	return &Tree{
		entries: entries,
		id:      HashObject(KindTree, SerializeTree(entries)),
	}
}

// ID returns the SHA-1 identifier of the tree
func (t *Tree) ID() ObjectID {
	return t.id
}

func (t *Tree) Kind() Kind {
	return KindTree
}

// Entries returns all tree entries in canonical order
func (t *Tree) Entries() []TreeEntry {
	return t.entries
}

// Size returns the size of the tree content
func (t *Tree) Size() int {
	return len(t.Content())
}

// Content returns the raw tree payload
func (t *Tree) Content() []byte {
	return SerializeTree(t.entries)
}

// Header returns the object header
func (t *Tree) Header() string {
	return Header(KindTree, t.Size())
}

func (t *Tree) Data() []byte {
	return Wrap(KindTree, t.Content())
}

// String returns a human-readable representation
func (t *Tree) String() string {
	return fmt.Sprintf("Tree{id: %s, entries: %d}", t.id, len(t.entries))
}

// FindEntry finds an entry by name
func (t *Tree) FindEntry(name string) (*TreeEntry, bool) {
	for _, entry := range t.entries {
		if entry.Name() == name {
			return &entry, true
		}
	}
	return nil, false
}
