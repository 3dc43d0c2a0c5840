// Package imaging turns uploaded item pictures into bounded JPEG thumbnails.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"

	"github.com/erazemk/inventorypro/internal/model"
)

const (
	// MaxDimension bounds the width and height of a stored picture.
	MaxDimension = 1024
	// JPEGQuality is the encoder quality of stored pictures.
	JPEGQuality = 85
	// MaxUploadBytes caps the size of an accepted upload.
	MaxUploadBytes = 10 << 20
	// MaxPixels caps width times height of an accepted upload. The header is
	// checked before the bitmap is allocated.
	MaxPixels = 40_000_000
	// MIME is the type of every stored picture.
	MIME = "image/jpeg"
)

// accepted maps sniffed upload types to whether they are decoded.
var accepted = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Picture is a re-encoded item picture.
type Picture struct {
	Data   []byte
	Width  int
	Height int
}

// Thumbnail decodes a JPEG or PNG upload, shrinks it to fit MaxDimension and
// re-encodes it as JPEG. The format is sniffed from the bytes, not taken from
// the client. Rejected uploads return an error wrapping model.ErrInvalid.
func Thumbnail(r io.Reader) (*Picture, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading picture: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("%w: picture larger than %d bytes", model.ErrInvalid, MaxUploadBytes)
	}

	if detected := http.DetectContentType(data); !accepted[detected] {
		return nil, fmt.Errorf("%w: unsupported picture format %s", model.ErrInvalid, detected)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: reading picture header: %v", model.ErrInvalid, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: picture dimensions %dx%d exceed %d pixels", model.ErrInvalid, cfg.Width, cfg.Height, MaxPixels)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding picture: %v", model.ErrInvalid, err)
	}

	dst := shrink(src, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding picture: %w", err)
	}

	b := dst.Bounds()
	return &Picture{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// fit scales w x h down to fit a limit x limit box, keeping the aspect ratio.
// Sizes already inside the box are returned unchanged.
func fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}

func shrink(src image.Image, limit int) image.Image {
	b := src.Bounds()
	w, h := fit(b.Dx(), b.Dy(), limit)
	if w == b.Dx() && h == b.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
