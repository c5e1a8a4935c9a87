package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/dmitrijs2005/clipvault/internal/models"
	xclip "golang.design/x/clipboard"
)

// System accesses the OS clipboard through golang.design/x/clipboard.
// Image content crosses the boundary as PNG and is converted to the raw
// RGBA canonical form on the way in, so hashing stays stable regardless of
// how the source application encoded the image.
type System struct{}

// NewSystem initializes the underlying clipboard once per process.
func NewSystem() (*System, error) {
	if err := xclip.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize clipboard: %w", err)
	}
	return &System{}, nil
}

func (s *System) ReadText() (string, error) {
	b := xclip.Read(xclip.FmtText)
	if len(b) == 0 {
		return "", ErrEmpty
	}
	return string(b), nil
}

func (s *System) ReadImage() (*models.ImageData, error) {
	b := xclip.Read(xclip.FmtImage)
	if len(b) == 0 {
		return nil, ErrEmpty
	}

	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to decode clipboard image: %w", err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	return models.NewImageData(bounds.Dx(), bounds.Dy(), rgba.Pix), nil
}

func (s *System) WriteText(text string) error {
	xclip.Write(xclip.FmtText, []byte(text))
	return nil
}

func (s *System) WriteImage(data *models.ImageData) error {
	rgba := image.NewRGBA(image.Rect(0, 0, data.Width, data.Height))
	copy(rgba.Pix, data.Bytes)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return fmt.Errorf("failed to encode clipboard image: %w", err)
	}
	xclip.Write(xclip.FmtImage, buf.Bytes())
	return nil
}
