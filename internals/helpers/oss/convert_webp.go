package oss

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	xwebp "golang.org/x/image/webp"
)

const (
	avatarMaxW    = 512
	avatarMaxH    = 512
	avatarQuality = 80
)

// ConvertToWebP: decode jpg/png/webp, resize keep-aspect, encode WebP lossy.
func ConvertToWebP(file multipart.File, filename string) ([]byte, error) {
	all, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}

	img = imaging.Fit(img, avatarMaxW, avatarMaxH, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: false, Quality: avatarQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("file kosong")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".webp" {
		if img, err := xwebp.Decode(bytes.NewReader(all)); err == nil {
			return img, nil
		}
	}
	img, err := imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("format tidak didukung: %w", err)
	}
	return img, nil
}
