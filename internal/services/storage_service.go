// internal/services/storage_service.go
package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/juggernaut03/kalakritBackend/internal/apperrors"
	"github.com/juggernaut03/kalakritBackend/internal/i18n"
	"github.com/juggernaut03/kalakritBackend/internal/metrics"
	"github.com/juggernaut03/kalakritBackend/internal/storage"
)

// ImageStore is the part of StorageService used by product creation.
type ImageStore interface {
	Store(ctx context.Context, imageData string) (*storage.Object, error)
	Delete(ctx context.Context, key string) error
}

type StorageService struct {
	driver storage.Driver
	folder string
}

func NewStorageService(driver storage.Driver, folder string) *StorageService {
	return &StorageService{
		driver: driver,
		folder: folder,
	}
}

// Store uploads one base64 image, raw or data URI, and returns its public URL
// and the key needed to delete it. Remote failures are not retried.
func (s *StorageService) Store(ctx context.Context, imageData string) (*storage.Object, error) {
	dataURI, err := storage.NormalizeDataURI(imageData)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrInvalidInput, i18n.KeyImageRequired)
	}

	obj, err := s.driver.Put(ctx, dataURI, s.folder)
	if err != nil {
		metrics.ImageUploads.WithLabelValues(s.driver.Name(), "failed").Inc()
		if errors.Is(err, storage.ErrMalformedImage) || errors.Is(err, storage.ErrUnsupportedImage) {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, i18n.KeyImageUnavailable, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, i18n.KeyImageUnavailable, err)
	}

	metrics.ImageUploads.WithLabelValues(s.driver.Name(), "ok").Inc()
	return obj, nil
}

func (s *StorageService) Delete(ctx context.Context, key string) error {
	if err := s.driver.Delete(ctx, key); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, i18n.KeyImageUnavailable, err)
	}
	return nil
}

// Ping checks the image store at startup. A failure is logged, not fatal.
func (s *StorageService) Ping(ctx context.Context) error {
	err := s.driver.Ping(ctx)
	if err != nil {
		logrus.WithError(err).WithField("driver", s.driver.Name()).Warn("Image store is not reachable")
		return err
	}
	logrus.WithField("driver", s.driver.Name()).Info("Image store connected")
	return nil
}

func (s *StorageService) DriverName() string {
	return s.driver.Name()
}
