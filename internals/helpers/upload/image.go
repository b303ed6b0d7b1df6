package upload

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrNotAllowed = errors.New("format gambar tidak didukung (png, jpg, jpeg, gif, webp)")
	ErrEmptyName  = errors.New("nama file kosong")

	allowedExt = map[string]struct{}{".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {}}
	unsafeRe   = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
)

// SanitizeFilename: buang path & diakritik (é -> e), lalu karakter selain huruf, angka, titik, dash, underscore.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var buf []rune
	for _, r := range norm.NFD.String(name) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	name = unsafeRe.ReplaceAllString(string(buf), "_")
	name = strings.TrimLeft(name, ".")
	return name
}

func AllowedImage(name string) bool {
	_, ok := allowedExt[strings.ToLower(filepath.Ext(name))]
	return ok
}

type ImageStore struct {
	Dir      string
	MaxWidth int
}

func NewImageStore(dir string, maxWidth int) *ImageStore {
	return &ImageStore{Dir: dir, MaxWidth: maxWidth}
}

// SaveImage menyimpan file upload dengan nama asli yang disanitasi.
// Gambar diperkecil kalau lebih lebar dari MaxWidth; GIF disimpan apa adanya (animasi).
func (s *ImageStore) SaveImage(fh *multipart.FileHeader) (string, error) {
	name := SanitizeFilename(fh.Filename)
	if name == "" {
		return "", ErrEmptyName
	}
	if !AllowedImage(name) {
		return "", ErrNotAllowed
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir upload: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	dst := filepath.Join(s.Dir, name)
	ext := strings.ToLower(filepath.Ext(name))

	if ext == ".gif" {
		g, err := gif.DecodeAll(src)
		if err != nil {
			return "", fmt.Errorf("gif tidak valid: %w", err)
		}
		f, err := os.Create(dst)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return name, gif.EncodeAll(f, g)
	}

	var img image.Image
	if ext == ".webp" {
		img, err = webp.Decode(src)
	} else {
		img, err = imaging.Decode(src, imaging.AutoOrientation(true))
	}
	if err != nil {
		return "", fmt.Errorf("gambar tidak valid: %w", err)
	}

	if s.MaxWidth > 0 && img.Bounds().Dx() > s.MaxWidth {
		img = imaging.Resize(img, s.MaxWidth, 0, imaging.Lanczos)
	}

	if ext == ".webp" {
		f, err := os.Create(dst)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return name, webp.Encode(f, img, &webp.Options{Quality: 82})
	}
	if err := imaging.Save(img, dst, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("gagal menyimpan gambar: %w", err)
	}
	return name, nil
}
