package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/KostasZigo/gogitstore/internal/codec"
	"github.com/KostasZigo/gogitstore/internal/constants"
	"github.com/KostasZigo/gogitstore/internal/objects"
	"go.uber.org/zap"
	"gopkg.in/ini.v1"
)

// Config holds the repository settings read from .gogit/config.
type Config struct {
	// Compression is the zlib level used for new objects (-1..9).
	Compression int
	// StrictSize rejects objects whose header size differs from the payload length.
	StrictSize bool
}

func DefaultConfig() Config {
	return Config{
		Compression: codec.DefaultLevel,
		StrictSize:  false,
	}
}

// LoadConfig reads .gogit/config under repoPath.
// A missing file or key leaves the default in place.
func LoadConfig(repoPath string) (Config, error) {
	cfg := DefaultConfig()
	cfgPath := filepath.Join(repoPath, constants.Gogit, constants.Config)

	// Loose treats a missing file as empty
	file, err := ini.LoadSources(ini.LoadOptions{Loose: true}, cfgPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", cfgPath, err)
	}

	core := file.Section(constants.CoreSection)

	if core.HasKey(constants.CompressionKey) {
		level, err := core.Key(constants.CompressionKey).Int()
		if err != nil {
			return cfg, fmt.Errorf("invalid %s.%s: %w", constants.CoreSection, constants.CompressionKey, err)
		}
		cfg.Compression = level
	}

	if core.HasKey(constants.StrictSizeKey) {
		strict, err := core.Key(constants.StrictSizeKey).Bool()
		if err != nil {
			return cfg, fmt.Errorf("invalid %s.%s: %w", constants.CoreSection, constants.StrictSizeKey, err)
		}
		cfg.StrictSize = strict
	}

	return cfg, nil
}

// OpenStore returns an object store for repoPath configured from its config file.
func OpenStore(repoPath string, logger *zap.Logger) (*objects.ObjectStore, error) {
	cfg, err := LoadConfig(repoPath)
	if err != nil {
		return nil, err
	}

	c, err := codec.New(cfg.Compression)
	if err != nil {
		return nil, fmt.Errorf("invalid %s.%s: %w", constants.CoreSection, constants.CompressionKey, err)
	}

	return objects.NewObjectStore(repoPath,
		objects.WithCodec(c),
		objects.WithStrictSize(cfg.StrictSize),
		objects.WithLogger(logger),
	), nil
}

func writeConfig(gogitDir string, cfg Config) error {
	file := ini.Empty()

	core, err := file.NewSection(constants.CoreSection)
	if err != nil {
		return fmt.Errorf("failed to create config section: %w", err)
	}
	if _, err := core.NewKey(constants.CompressionKey, strconv.Itoa(cfg.Compression)); err != nil {
		return fmt.Errorf("failed to set %s.%s: %w", constants.CoreSection, constants.CompressionKey, err)
	}
	if _, err := core.NewKey(constants.StrictSizeKey, strconv.FormatBool(cfg.StrictSize)); err != nil {
		return fmt.Errorf("failed to set %s.%s: %w", constants.CoreSection, constants.StrictSizeKey, err)
	}

	cfgPath := filepath.Join(gogitDir, constants.Config)
	if err := file.SaveTo(cfgPath); err != nil {
		return fmt.Errorf("failed to create %s file: %w", constants.Config, err)
	}

	return os.Chmod(cfgPath, constants.FilePerms)
}
