package io

import (
	"fmt"
	"os"
	"path/filepath"
)

// Downloader offers a payload to the user under a file name.
type Downloader interface {
	Offer(name string, payload []byte) error
}

// DirDownloader saves offered payloads into a directory.
type DirDownloader struct {
	Dir string
}

func (d DirDownloader) Offer(name string, payload []byte) error {

	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return fmt.Errorf("unable to create download folder: %w", err)
	}

	path := filepath.Join(d.Dir, filepath.Base(name))

	fw := NewFileReader(path)
	if err := fw.Open(false); err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Write(payload); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}

	return nil
}
