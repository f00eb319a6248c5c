// internal/storage/storage.go
package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/juggernaut03/kalakritBackend/internal/config"
)

const defaultDataURIPrefix = "data:image/jpeg;base64,"

var (
	ErrEmptyImage       = errors.New("no image data provided")
	ErrMalformedImage   = errors.New("malformed image data")
	ErrUnsupportedImage = errors.New("unsupported image format, allowed: jpg, jpeg, png")
)

// AllowedFormats are the image formats accepted by every driver.
var AllowedFormats = []string{"jpg", "jpeg", "png"}

type Object struct {
	URL string
	Key string
}

// Driver is a hosted object/image store.
type Driver interface {
	Name() string
	Put(ctx context.Context, dataURI, folder string) (*Object, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

func New(cfg *config.Config) (Driver, error) {
	switch cfg.Storage.Driver {
	case "cloudinary":
		return NewCloudinary(cfg.Cloudinary)
	case "s3":
		return NewS3(cfg.AWS)
	case "local":
		return NewLocal(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	default:
		return nil, fmt.Errorf("unknown image store %q", cfg.Storage.Driver)
	}
}

// NormalizeDataURI prefixes raw base64 payloads with a jpeg data URI header.
func NormalizeDataURI(data string) (string, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return "", ErrEmptyImage
	}
	if strings.HasPrefix(data, "data:") {
		return data, nil
	}
	return defaultDataURIPrefix + data, nil
}

type Image struct {
	Bytes       []byte
	ContentType string
	Ext         string
}

// DecodeDataURI decodes a base64 data URI and checks the file signature.
func DecodeDataURI(dataURI string) (*Image, error) {
	header, payload, ok := strings.Cut(dataURI, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, ErrMalformedImage
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImage, err)
	}

	switch {
	case isJPEG(raw):
		return &Image{Bytes: raw, ContentType: "image/jpeg", Ext: ".jpg"}, nil
	case isPNG(raw):
		return &Image{Bytes: raw, ContentType: "image/png", Ext: ".png"}, nil
	default:
		return nil, ErrUnsupportedImage
	}
}

func isJPEG(buffer []byte) bool {
	return len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF
}

func isPNG(buffer []byte) bool {
	return len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47
}

func generateKey(folder, ext string) string {
	filename := fmt.Sprintf("%s_%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	if folder != "" {
		return path.Join(folder, filename)
	}
	return filename
}
