package objects

// Object represents any GoGit object that can be stored.
// Blobs and trees implement this interface.
type Object interface {
	// ID returns the SHA-1 identifier of the object
	ID() ObjectID

	// Kind returns the kind written in the object header
	Kind() Kind

	// Content returns the payload without header
	Content() []byte

	// Data returns the complete object data including header
	// Format: "<kind> <size>\0<content>"
	Data() []byte
}
