package filestorage

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveBytes writes data as subdir/name and returns the public URL of the file
	SaveBytes(subdir, name string, data []byte) (string, error)

	// DeleteFile removes a file given its public URL or relative path
	DeleteFile(fileURL string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}
