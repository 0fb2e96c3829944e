package source

import (
	"iter"
	"os"
	"syscall"

	mgrepio "github.com/TimelordUK/mgrep/internal/io"
	"github.com/TimelordUK/mgrep/internal/lines"
)

// Regular files below this size are read directly rather than mapped
const mapThreshold = 64 * 1024

// FileSource provides lines from a single memory-mapped file
type FileSource struct {
	file *mgrepio.MappedFile
	path string
}

// NewFileSource creates a new mapped file source. path must be a regular file.
func NewFileSource(path string) (*FileSource, error) {
	file, err := mgrepio.OpenMapped(path)
	if err != nil {
		return nil, err
	}

	return &FileSource{
		file: file,
		path: path,
	}, nil
}

// Open satisfies OpenFunc for file paths. Large regular files are mapped;
// small files, pipes, devices and /proc entries are read as a stream,
// since their stat size is zero or not worth a mapping.
func Open(path string) (LineProvider, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: path, Err: syscall.EISDIR}
	}

	if info.Mode().IsRegular() && info.Size() >= mapThreshold {
		src, err := NewFileSource(path)
		if err != nil {
			return nil, err
		}
		return src, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewReaderSource(path, f), nil
}

// Lines returns the file's lines, read lazily from the mapping
func (s *FileSource) Lines() iter.Seq[lines.Line] {
	return lines.Read(s.file.Reader())
}

// Close closes the file source
func (s *FileSource) Close() error {
	return s.file.Close()
}

// Path returns the file path
func (s *FileSource) Path() string {
	return s.path
}
