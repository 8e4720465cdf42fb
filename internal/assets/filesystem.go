package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads assets from a base directory, falling back to the
// embedded defaults when a file is missing. The expected layout is
// styles/<name>.css and templates/<name>.html under the base path.
type FilesystemLoader struct {
	basePath string
	fallback *EmbeddedLoader
}

// NewFilesystemLoader creates a FilesystemLoader rooted at basePath.
// Returns ErrInvalidBasePath if basePath is not a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	info, err := os.Stat(basePath)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBasePath, basePath)
	}
	return &FilesystemLoader{basePath: basePath, fallback: NewEmbeddedLoader()}, nil
}

// LoadStyle loads styles/<name>.css from the base path, or the embedded
// style of the same name when the custom file does not exist.
func (l *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := l.readFile(filepath.Join("styles", name+".css"))
	if errors.Is(err, fs.ErrNotExist) {
		return l.fallback.LoadStyle(name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrStyleNotFound, name, err)
	}
	return content, nil
}

// LoadTemplate loads templates/<name>.html from the base path, or the
// embedded template of the same name when the custom file does not exist.
func (l *FilesystemLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := l.readFile(filepath.Join("templates", name+".html"))
	if errors.Is(err, fs.ErrNotExist) {
		return l.fallback.LoadTemplate(name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrTemplateNotFound, name, err)
	}
	return content, nil
}

// readFile reads a file under the base path, refusing paths that escape it.
func (l *FilesystemLoader) readFile(rel string) (string, error) {
	full := filepath.Join(l.basePath, rel)

	absBase, err := filepath.Abs(l.basePath)
	if err != nil {
		return "", err
	}
	absFull, err := filepath.Abs(full)
	if err != nil {
		return "", err
	}
	if absFull != absBase && !isUnder(absFull, absBase) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetName, rel)
	}

	content, err := os.ReadFile(full)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// isUnder reports whether path is inside dir.
func isUnder(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
