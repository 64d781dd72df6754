package constants

import "os"

// Command name constants used in tests and error messages.
// Cobra Use fields remain inline for CLI discoverability.
const (
	InitCmdName       = "init"
	HashObjectCmdName = "hash-object"
	CatFileCmdName    = "cat-file"
	LsTreeCmdName     = "ls-tree"
	WriteTreeCmdName  = "write-tree"
)

// Repository directory and file names define the gogit metadata structure.
const (
	// Gogit is the repository metadata directory.
	Gogit = ".gogit"

	// Objects stores content-addressable objects (blobs, trees).
	Objects = "objects"

	// Refs contains branch and tag references.
	Refs = "refs"

	// Heads stores branch pointers under refs/.
	Heads = "heads"

	// Tags stores tag pointers under refs/.
	Tags = "tags"

	// Head points to current branch or detached commit.
	Head = "HEAD"

	// Config is the INI-formatted repository configuration file.
	Config = "config"
)

// Default repository values.
const (
	// DefaultBranch is the initial branch name for new repositories.
	DefaultBranch = "main"

	// DefaultRefPrefix is prepended to branch names in HEAD file.
	DefaultRefPrefix = "ref: refs/heads/"
)

// File system permissions for created files and directories.
const (
	// DirPerms grants read/write/execute to owner, read/execute to others (rwxr-xr-x).
	DirPerms os.FileMode = 0755

	// FilePerms grants read/write to owner, read-only to others (rw-r--r--).
	FilePerms os.FileMode = 0644

	// ObjectPerms marks stored objects read-only (r--r--r--); objects are never mutated.
	ObjectPerms os.FileMode = 0444
)

// Cryptographic hash properties.
const (
	// HashByteLength is byte length of SHA-1 hash (20 bytes).
	HashByteLength = 20

	// HashStringLength is hex string length of SHA-1 hash (40 characters).
	HashStringLength = 40

	// HashDirPrefixLength is subdirectory prefix length under objects/ (2 characters).
	HashDirPrefixLength = 2
)

// Object format constants.
const (
	// NullByte separates header from content in objects and name from digest in tree entries.
	NullByte = '\x00'

	// SpaceByte separates kind from size in headers and mode from name in tree entries.
	SpaceByte = ' '
)

// Environment and configuration keys.
const (
	// EnvPrefix prefixes process-level settings read from the environment (GOGIT_LOG_LEVEL).
	EnvPrefix = "GOGIT"

	// LogLevelKey selects the minimum log level (debug, info, warn, error).
	LogLevelKey = "log-level"

	// LogFormatKey selects the log encoding (console, json).
	LogFormatKey = "log-format"

	// DefaultLogLevel keeps command output clean unless asked otherwise.
	DefaultLogLevel = "warn"

	// DefaultLogFormat is the human-readable zap console encoder.
	DefaultLogFormat = "console"

	// CoreSection is the repository config section holding object store settings.
	CoreSection = "core"

	// CompressionKey is the zlib level used when writing objects (-1..9).
	CompressionKey = "compression"

	// StrictSizeKey enables the envelope size cross-check on read.
	StrictSizeKey = "strictsize"
)
