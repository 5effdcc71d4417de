package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/nsflow/pkg/diagram"
	"github.com/dshills/nsflow/pkg/validation"
)

const diagramExt = ".nsd.yaml"

// FilesystemRepository implements diagram.Repository using YAML files.
// Diagrams are stored in <configDir>/diagrams/<id>.nsd.yaml
type FilesystemRepository struct {
	baseDir   string
	validator *validation.PathValidator
}

// NewFilesystemRepository creates a repository below ~/.nsflow
func NewFilesystemRepository() (*FilesystemRepository, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewFilesystemRepositoryWithPath(filepath.Join(homeDir, ".nsflow"))
}

// NewFilesystemRepositoryWithPath creates a repository below a custom
// configuration directory
func NewFilesystemRepositoryWithPath(baseDir string) (*FilesystemRepository, error) {
	diagramsDir, err := filepath.Abs(filepath.Join(baseDir, "diagrams"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve diagrams directory: %w", err)
	}
	if err := os.MkdirAll(diagramsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create diagrams directory: %w", err)
	}
	validator, err := validation.NewPathValidator(diagramsDir)
	if err != nil {
		return nil, err
	}
	return &FilesystemRepository{baseDir: diagramsDir, validator: validator}, nil
}

// Dir returns the directory holding the diagram files
func (r *FilesystemRepository) Dir() string {
	return r.baseDir
}

// Save writes a diagram atomically through a temp file and rename
func (r *FilesystemRepository) Save(root *diagram.Root) error {
	if root == nil {
		return fmt.Errorf("cannot save nil diagram")
	}
	if root.ID == "" {
		return fmt.Errorf("diagram must have an ID")
	}

	data, err := diagram.Marshal(root)
	if err != nil {
		return fmt.Errorf("failed to marshal diagram to YAML: %w", err)
	}

	filePath, err := r.diagramPath(root.ID)
	if err != nil {
		return err
	}
	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write diagram file: %w", err)
	}
	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to save diagram file: %w", err)
	}
	return nil
}

// Load reads a diagram by ID
func (r *FilesystemRepository) Load(id diagram.ID) (*diagram.Root, error) {
	if id == "" {
		return nil, fmt.Errorf("diagram ID cannot be empty")
	}
	path, err := r.diagramPath(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", diagram.ErrDiagramNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read diagram file: %w", err)
	}
	root, err := diagram.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse diagram %s: %w", id, err)
	}
	return root, nil
}

// Exists reports whether a diagram file is present
func (r *FilesystemRepository) Exists(id diagram.ID) (bool, error) {
	path, err := r.diagramPath(id)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat diagram file: %w", err)
	}
}

// Delete removes a diagram file
func (r *FilesystemRepository) Delete(id diagram.ID) error {
	if id == "" {
		return fmt.Errorf("diagram ID cannot be empty")
	}
	path, err := r.diagramPath(id)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", diagram.ErrDiagramNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete diagram file: %w", err)
	}
	return nil
}

// List returns every readable diagram. Files that fail to parse are
// skipped.
func (r *FilesystemRepository) List() ([]*diagram.Root, error) {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagrams directory: %w", err)
	}

	roots := make([]*diagram.Root, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), diagramExt) {
			continue
		}
		id := diagram.ID(strings.TrimSuffix(entry.Name(), diagramExt))
		root, err := r.Load(id)
		if err != nil {
			continue
		}
		roots = append(roots, root)
	}
	return roots, nil
}

// diagramPath maps an ID to its file, refusing IDs that would leave the
// repository directory
func (r *FilesystemRepository) diagramPath(id diagram.ID) (string, error) {
	path, err := r.validator.File(id.String(), diagramExt)
	if err != nil {
		return "", fmt.Errorf("invalid diagram ID %q: %w", id, err)
	}
	return path, nil
}
