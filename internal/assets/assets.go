package assets

// Loader is the contract shared by the embedded and filesystem loaders.
type Loader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// Compile-time interface checks.
var (
	_ Loader = (*EmbeddedLoader)(nil)
	_ Loader = (*FilesystemLoader)(nil)
)

// NewLoader returns the loader for the given base path: the embedded loader
// when basePath is empty, otherwise a filesystem loader with embedded
// fallback.
func NewLoader(basePath string) (Loader, error) {
	if basePath == "" {
		return NewEmbeddedLoader(), nil
	}
	return NewFilesystemLoader(basePath)
}
