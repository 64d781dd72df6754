package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KostasZigo/gogitstore/internal/constants"
	"go.uber.org/zap"
)

// ErrNotARepository is returned by FindRepoRoot when no metadata directory is found.
var ErrNotARepository = errors.New("not a gogit repository")

// InitRepository creates the metadata directory under path:
// objects/, refs/heads/, refs/tags/, HEAD and config.
// Anything created is removed again if a step fails.
func InitRepository(path string, logger *zap.Logger) error {
	// Resolves and adds OS specific separator
	gogitDir := filepath.Join(path, constants.Gogit)

	if err := checkRepositoryDoesNotExist(gogitDir); err != nil {
		return err
	}

	// Clean up partially created directories/files unless every step succeeded
	var initSuccess bool
	defer func() {
		if !initSuccess {
			cleanupRepository(gogitDir, logger)
		}
	}()

	directories := []string{
		gogitDir,
		filepath.Join(gogitDir, constants.Objects),
		filepath.Join(gogitDir, constants.Refs),
		filepath.Join(gogitDir, constants.Refs, constants.Heads),
		filepath.Join(gogitDir, constants.Refs, constants.Tags),
	}

	// Create all gogit directories
	for _, directory := range directories {
		if err := os.MkdirAll(directory, constants.DirPerms); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", directory, err)
		}
	}

	// Create HEAD file pointing to main branch
	headFile := filepath.Join(gogitDir, constants.Head)
	headContent := constants.DefaultRefPrefix + constants.DefaultBranch + "\n"

	if err := os.WriteFile(headFile, []byte(headContent), constants.FilePerms); err != nil {
		return fmt.Errorf("failed to create %s file: %w", constants.Head, err)
	}

	if err := writeConfig(gogitDir, DefaultConfig()); err != nil {
		return err
	}

	logger.Debug("repository initialized", zap.String("path", gogitDir))
	initSuccess = true
	return nil
}

// FindRepoRoot locates the directory holding .gogit by walking up from start.
func FindRepoRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	for {
		gogitPath := filepath.Join(dir, constants.Gogit)
		if info, err := os.Stat(gogitPath); err == nil && info.IsDir() {
			return dir, nil
		}

		// Dir returns all but the last element of path
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding .gogit
			return "", fmt.Errorf("%w: %s directory not found from %s", ErrNotARepository, constants.Gogit, start)
		}
		dir = parent
	}
}

func checkRepositoryDoesNotExist(path string) error {
	_, err := os.Stat(path)

	// If path doesn't exist there is no error
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to check repository path: %w", err)
	}

	return fmt.Errorf("repository already exists at %s", path)
}

// Removes the entire .gogit directory if it exists
func cleanupRepository(gogitDir string, logger *zap.Logger) {
	if _, err := os.Stat(gogitDir); err == nil {
		logger.Debug("cleaning up partial repository initialization",
			zap.String("path", gogitDir))

		if err := os.RemoveAll(gogitDir); err != nil {
			logger.Warn("failed to cleanup repository directory",
				zap.String("path", gogitDir),
				zap.Error(err))
		} else {
			logger.Debug("successfully cleaned up repository directory",
				zap.String("path", gogitDir))
		}
	}
}
