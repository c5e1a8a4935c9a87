package models

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const imageHeaderSize = 16

// ImageData carries raw RGBA pixels plus dimensions. The cipher treats its
// serialized form as an opaque blob; the dedup hash is computed over that
// same serialized form, so Marshal must stay byte-stable across versions.
type ImageData struct {
	Width  int
	Height int
	Bytes  []byte
}

func NewImageData(width, height int, pixels []byte) *ImageData {
	return &ImageData{Width: width, Height: height, Bytes: pixels}
}

// Marshal serializes the image as width(8, LE) || height(8, LE) || RGBA
// bytes. No maps, no struct tags: the layout is fixed so re-serializing
// identical pixels always yields identical bytes.
func (d *ImageData) Marshal() []byte {
	out := make([]byte, imageHeaderSize+len(d.Bytes))
	binary.LittleEndian.PutUint64(out[0:8], uint64(d.Width))
	binary.LittleEndian.PutUint64(out[8:16], uint64(d.Height))
	copy(out[imageHeaderSize:], d.Bytes)
	return out
}

// UnmarshalImageData parses the canonical form produced by Marshal.
func UnmarshalImageData(data []byte) (*ImageData, error) {
	if len(data) < imageHeaderSize {
		return nil, errors.New("image data too short")
	}
	width := int(binary.LittleEndian.Uint64(data[0:8]))
	height := int(binary.LittleEndian.Uint64(data[8:16]))

	pixels := data[imageHeaderSize:]
	if width < 0 || height < 0 || width*height*4 != len(pixels) {
		return nil, fmt.Errorf("image dimensions %dx%d do not match %d pixel bytes",
			width, height, len(pixels))
	}

	return &ImageData{Width: width, Height: height, Bytes: pixels}, nil
}
