// Package zip bundles generated artifact assets into a single downloadable
// archive.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Asset is one named file inside an archive.
type Asset struct {
	Filename string
	Data     []byte
}

// Archive writes the assets into an in-memory zip archive, preserving order.
func Archive(assets []Asset) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, asset := range assets {
		w, err := zw.Create(asset.Filename)
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", asset.Filename, err)
		}
		if _, err := w.Write(asset.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", asset.Filename, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close archive: %w", err)
	}
	return buf.Bytes(), nil
}
