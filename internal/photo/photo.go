// Package photo stores profile pictures: sniff, decode, shrink to fit and
// persist under a unique filename.
package photo

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"comunidade-inteligente/internal/worker"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// MaxSize bounds both dimensions of a stored photo, in pixels.
const MaxSize = 400

// MaxPixels bounds the decoded size of an upload. The header is checked
// before any pixel buffer is allocated.
const MaxPixels = 40_000_000

var ErrUnsupportedFormat = errors.New("unsupported image format")

var randRead = rand.Read

type Store struct {
	dir       string
	urlPrefix string
	pool      worker.Pool
}

// NewStore creates dir if needed. urlPrefix is where dir is served from.
func NewStore(dir, urlPrefix string, pool worker.Pool) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("photo: create dir: %w", err)
	}
	return &Store{dir: dir, urlPrefix: urlPrefix, pool: pool}, nil
}

func (s *Store) Dir() string { return s.dir }

// URL returns the public path of a stored filename, escaped for use in href
// and src attributes.
func (s *Store) URL(filename string) string {
	return path.Join(s.urlPrefix, url.PathEscape(filename))
}

// Save validates the upload, shrinks it to fit MaxSize and writes it to the
// photo dir. It returns the new filename, not a path.
func (s *Store) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if _, err := imaging.FormatFromFilename(fh.Filename); err != nil {
		return "", ErrUnsupportedFormat
	}

	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("photo: token: %w", err)
	}
	name := Filename(fh.Filename, token)

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("photo: open upload: %w", err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("photo: sniff: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", ErrUnsupportedFormat
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("photo: rewind: %w", err)
	}
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxPixels {
		return "", fmt.Errorf("%w: %dx%d too large", ErrUnsupportedFormat, cfg.Width, cfg.Height)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("photo: rewind: %w", err)
	}

	err = s.pool.Run(ctx, func() error {
		img, err := imaging.Decode(f, imaging.AutoOrientation(true))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		var thumb image.Image = imaging.Fit(img, MaxSize, MaxSize, imaging.Lanczos)
		if err := imaging.Save(thumb, filepath.Join(s.dir, name)); err != nil {
			return fmt.Errorf("photo: save: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// EnsurePlaceholder writes a plain gray picture under name unless a file
// already exists there. New accounts point at it until they upload a photo.
func (s *Store) EnsurePlaceholder(name string) error {
	dst := filepath.Join(s.dir, name)
	if _, err := os.Stat(dst); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("photo: stat placeholder: %w", err)
	}
	img := imaging.New(MaxSize, MaxSize, color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff})
	if err := imaging.Save(img, dst); err != nil {
		return fmt.Errorf("photo: save placeholder: %w", err)
	}
	return nil
}

// Filename inserts token between the base name and the extension of the
// uploaded name. Any directory part of original is dropped.
func Filename(original, token string) string {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	ext := path.Ext(base)
	return strings.TrimSuffix(base, ext) + token + ext
}

func newToken() (string, error) {
	var b [8]byte
	if _, err := randRead(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
