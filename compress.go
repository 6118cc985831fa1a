package spamc

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// compressBody zlib-compresses a request body for use with the
// "Compress: zlib" header.
func compressBody(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("spamc: compress body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("spamc: compress body: %w", err)
	}
	return buf.Bytes(), nil
}

// decompressBody inflates a zlib-compressed message body.
func decompressBody(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("spamc: decompress body: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("spamc: decompress body: %w", err)
	}
	return out, nil
}
