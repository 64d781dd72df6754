package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/KostasZigo/gogitstore/internal/constants"
)

// ErrInvalidObjectID is wrapped by every identifier validation failure.
var ErrInvalidObjectID = errors.New("invalid object id")

// ObjectID is the lowercase hex SHA-1 digest naming an object.
// The zero value is not a valid identifier.
type ObjectID struct {
	hex string
}

// ParseObjectID validates externally supplied identifier text.
func ParseObjectID(s string) (ObjectID, error) {
	id := ObjectID{hex: s}
	if err := id.Validate(); err != nil {
		return ObjectID{}, err
	}
	return id, nil
}

// ObjectIDFromDigest hex-encodes a raw 20-byte digest.
func ObjectIDFromDigest(digest [constants.HashByteLength]byte) ObjectID {
	return ObjectID{hex: hex.EncodeToString(digest[:])}
}

// HashObject computes the identifier of the envelope "<kind> <size>\0<payload>".
func HashObject(kind Kind, payload []byte) ObjectID {
	hasher := sha1.New()
	hasher.Write([]byte(Header(kind, len(payload))))
	hasher.Write(payload)

	var digest [constants.HashByteLength]byte
	copy(digest[:], hasher.Sum(nil))
	return ObjectIDFromDigest(digest)
}

// Validate checks the identifier is exactly 40 characters of [0-9a-f].
// Run before an identifier is turned into a filesystem path, whatever its origin.
func (id ObjectID) Validate() error {
	if len(id.hex) != constants.HashStringLength {
		return fmt.Errorf("%w %q: expected %d hex characters, got %d",
			ErrInvalidObjectID, id.hex, constants.HashStringLength, len(id.hex))
	}

	for i := 0; i < len(id.hex); i++ {
		c := id.hex[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return fmt.Errorf("%w %q: non-hex character %q at position %d",
				ErrInvalidObjectID, id.hex, c, i)
		}
	}

	return nil
}

// IsZero reports whether the identifier was never set.
func (id ObjectID) IsZero() bool {
	return id.hex == ""
}

// String returns the 40-character hex form.
func (id ObjectID) String() string {
	return id.hex
}

// DirName is the fan-out directory under objects/ (first two characters).
func (id ObjectID) DirName() string {
	return id.hex[:constants.HashDirPrefixLength]
}

// FileName is the object file name inside its fan-out directory.
func (id ObjectID) FileName() string {
	return id.hex[constants.HashDirPrefixLength:]
}

// Raw returns the 20 raw digest bytes, as embedded in tree payloads.
func (id ObjectID) Raw() [constants.HashByteLength]byte {
	var raw [constants.HashByteLength]byte
	// Validated identifiers always decode; the zero value yields all zeros
	hex.Decode(raw[:], []byte(id.hex))
	return raw
}
