package io

import (
	"errors"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// ErrNotRegular is returned for paths whose stat size does not describe
// their content (pipes, devices, /proc entries)
var ErrNotRegular = errors.New("not a regular file")

// MappedFile provides memory-mapped read access to a regular file
type MappedFile struct {
	reader *mmap.ReaderAt
	size   int64
}

// OpenMapped opens a regular file with memory mapping
func OpenMapped(path string) (*MappedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, &os.PathError{Op: "mmap", Path: path, Err: ErrNotRegular}
	}

	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	return &MappedFile{
		reader: reader,
		size:   int64(reader.Len()),
	}, nil
}

// Reader returns a sequential reader over the whole mapping
func (m *MappedFile) Reader() io.Reader {
	return io.NewSectionReader(m.reader, 0, m.size)
}

// Close closes the memory mapping
func (m *MappedFile) Close() error {
	return m.reader.Close()
}
