package models

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// EncodeBlob serializes an entry for the peer wire: JSON, gzip, base64.
// The payload inside is already ciphertext; compression here only shrinks
// the JSON/base64 framing, it is not a confidentiality layer.
func EncodeBlob(e *ClipboardEntry) (string, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("marshaling entry: %w", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("compressing entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compressing entry: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeBlob reverses EncodeBlob.
func DecodeBlob(blob string) (*ClipboardEntry, error) {
	compressed, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("decoding entry blob: %w", err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("decompressing entry blob: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompressing entry blob: %w", err)
	}

	var e ClipboardEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("unmarshaling entry: %w", err)
	}
	return &e, nil
}
