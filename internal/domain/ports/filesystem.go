package ports

import (
	"io"
	"os"
)

// FileSystem abstracts the file operations the repositories need, for testability
type FileSystem interface {
	// File operations
	Open(name string) (File, error)
	Create(name string) (File, error)
	CreateTemp(dir, pattern string) (File, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error

	// File information
	Stat(name string) (os.FileInfo, error)
	Exists(path string) bool

	// File content operations
	ReadFile(filename string) ([]byte, error)
}

// File abstracts file operations for testability
type File interface {
	io.ReadWriter
	io.ReaderAt
	io.Closer

	Name() string
	Stat() (os.FileInfo, error)
	Sync() error
}

// RealFileSystem implements FileSystem using actual OS operations
type RealFileSystem struct{}

// NewRealFileSystem creates a new real file system implementation
func NewRealFileSystem() FileSystem {
	return &RealFileSystem{}
}

// Open opens a file for reading
func (fs *RealFileSystem) Open(name string) (File, error) {
	// #nosec G304 - the path is the presentation the user asked to edit
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Create creates a file for writing
func (fs *RealFileSystem) Create(name string) (File, error) {
	// #nosec G304 - the path is the output the user asked for
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// CreateTemp creates a temporary file in dir
func (fs *RealFileSystem) CreateTemp(dir, pattern string) (File, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Rename moves a file, replacing newpath
func (fs *RealFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Remove removes a file
func (fs *RealFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// Stat returns file information
func (fs *RealFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Exists checks if a file or directory exists
func (fs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads the entire file content
func (fs *RealFileSystem) ReadFile(filename string) ([]byte, error) {
	// #nosec G304 - File paths come from configuration or the filename prompt
	return os.ReadFile(filename)
}
