package objects

import (
	"fmt"
	"os"
)

// Blob holds the raw bytes of a single file, or the target text of a symlink.
type Blob struct {
	content []byte
	id      ObjectID
}

func NewBlob(content []byte) *Blob {
	return &Blob{
		content: content,
		id:      HashObject(KindBlob, content),
	}
}

func NewBlobFromFile(filepath string) (*Blob, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath, err)
	}
	return NewBlob(content), nil
}

// NewSymlinkBlob stores the link target text, never the file it points to.
func NewSymlinkBlob(filepath string) (*Blob, error) {
	target, err := os.Readlink(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read symlink %s: %w", filepath, err)
	}
	return NewBlob([]byte(target)), nil
}

func (b *Blob) ID() ObjectID {
	return b.id
}

func (b *Blob) Kind() Kind {
	return KindBlob
}

func (b *Blob) Content() []byte {
	return b.content
}

func (b *Blob) Size() int {
	return len(b.content)
}

func (b *Blob) Header() string {
	return Header(KindBlob, b.Size())
}

func (b *Blob) Data() []byte {
	return Wrap(KindBlob, b.content)
}

func (b *Blob) String() string {
	return fmt.Sprintf("Blob{id: %s, size: %d bytes}", b.id, b.Size())
}
