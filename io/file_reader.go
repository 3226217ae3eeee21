package io

import (
	"context"
	"errors"
	goio "io"
	"os"

	"golang.org/x/sync/singleflight"
)

var ErrFileNotOpened = errors.New("file not opened")

type FileReader struct {
	path   string
	file   *os.File
	opened bool
}

func NewFileReader(path string) *FileReader {
	return &FileReader{path: path}
}

func (f *FileReader) Open(readOnly bool) (topErr error) {

	var perm os.FileMode = 0644

	if readOnly {
		f.file, topErr = os.OpenFile(f.path, os.O_RDONLY, perm)
	} else {
		f.file, topErr = os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	}

	if topErr == nil {
		f.opened = true
	}

	return topErr
}

func (f *FileReader) Close() error {
	if !f.opened {
		return nil
	}

	f.opened = false
	return f.file.Close()
}

func (f *FileReader) ReadAll() ([]byte, error) {
	if !f.opened {
		return nil, ErrFileNotOpened
	}

	return goio.ReadAll(f.file)
}

func (f *FileReader) Write(in []byte) error {
	if !f.opened {
		return ErrFileNotOpened
	}

	writtenBytes, err := f.file.Write(in)
	if err != nil {
		return err
	}
	if writtenBytes != len(in) {
		return errors.New("written bytes mismatch")
	}

	return nil
}

// FileLoader reads files selected for import. Concurrent loads of the same
// path share one read.
type FileLoader struct {
	loadGroup singleflight.Group
}

func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// ReadText returns the whole file as text. The read itself is not cancelled
// with ctx, the caller simply stops waiting for it.
func (l *FileLoader) ReadText(ctx context.Context, path string) (string, error) {

	resultCh := l.loadGroup.DoChan(path, func() (any, error) {
		fr := NewFileReader(path)

		if err := fr.Open(true); err != nil {
			return nil, err
		}
		defer fr.Close()

		content, err := fr.ReadAll()
		if err != nil {
			return nil, err
		}

		return string(content), nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-resultCh:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}
