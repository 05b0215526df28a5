package geo

import (
	"context"
	"io"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/validation"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/google/uuid"
)

const mediaKind = "geo"

type geoRepo interface {
	CreateGeoPoint(ctx context.Context, point models.GeoPoint) (*models.GeoPoint, error)
	GeoPointByID(ctx context.Context, id uuid.UUID) (*models.GeoPoint, error)
	UpdateGeoPoint(ctx context.Context, point models.GeoPoint) (*models.GeoPoint, error)
	DeleteGeoPoint(ctx context.Context, id uuid.UUID) error
	ListGeoPoints(ctx context.Context, filter models.GeoPointFilter) ([]models.GeoPoint, int, error)
}

type mediaStorage interface {
	Upload(ctx context.Context, kind string, ownerID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	URL(ctx context.Context, objectKey string) (string, error)
	Delete(ctx context.Context, objectKey string) error
}

type GeoService struct {
	log     logger.Log
	geoRepo geoRepo
	media   mediaStorage
}

func NewGeoService(l logger.Log, repo geoRepo, media mediaStorage) *GeoService {
	return &GeoService{log: l, geoRepo: repo, media: media}
}

func (s *GeoService) CreateGeoPoint(ctx context.Context, point models.GeoPoint, createdBy uuid.UUID) (*models.GeoPoint, error) {
	if err := validation.ValidateGeoPoint(point); err != nil {
		return nil, err
	}
	point.CreatedBy = createdBy
	point.IsActive = true
	return s.geoRepo.CreateGeoPoint(ctx, point)
}

func (s *GeoService) UpdateGeoPoint(ctx context.Context, point models.GeoPoint, actor *models.User) (*models.GeoPoint, error) {
	existing, err := s.geoRepo.GeoPointByID(ctx, point.ID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.AdminRole && existing.CreatedBy != actor.ID {
		return nil, app_errors.ErrNotOwner
	}
	if err := validation.ValidateGeoPoint(point); err != nil {
		return nil, err
	}
	point.CreatedBy = existing.CreatedBy
	point.MediaKeys = existing.MediaKeys
	return s.geoRepo.UpdateGeoPoint(ctx, point)
}

// DeleteGeoPoint removes a point and its stored media. Media removal is
// best-effort, orphaned objects are logged and left behind.
func (s *GeoService) DeleteGeoPoint(ctx context.Context, id uuid.UUID, actor *models.User) error {
	existing, err := s.geoRepo.GeoPointByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != models.AdminRole && existing.CreatedBy != actor.ID {
		return app_errors.ErrNotOwner
	}

	if err := s.geoRepo.DeleteGeoPoint(ctx, id); err != nil {
		return err
	}
	for _, key := range existing.MediaKeys {
		if err := s.media.Delete(ctx, key); err != nil {
			s.log.ErrorErr("failed to delete geo media", err, "object_key", key)
		}
	}
	return nil
}

func (s *GeoService) GeoPointByID(ctx context.Context, id uuid.UUID) (*models.GeoPoint, error) {
	return s.geoRepo.GeoPointByID(ctx, id)
}

func (s *GeoService) ListGeoPoints(ctx context.Context, filter models.GeoPointFilter) ([]models.GeoPoint, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.geoRepo.ListGeoPoints(ctx, filter)
}

// AttachMedia uploads one media file for a point and records its object key.
func (s *GeoService) AttachMedia(ctx context.Context, id uuid.UUID, actor *models.User, filename string, reader io.Reader, size int64, contentType string) (*models.GeoPoint, error) {
	existing, err := s.geoRepo.GeoPointByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.AdminRole && existing.CreatedBy != actor.ID {
		return nil, app_errors.ErrNotOwner
	}

	objectKey, err := s.media.Upload(ctx, mediaKind, id, filename, reader, size, contentType)
	if err != nil {
		return nil, err
	}
	existing.MediaKeys = append(existing.MediaKeys, objectKey)

	updated, err := s.geoRepo.UpdateGeoPoint(ctx, *existing)
	if err != nil {
		if delErr := s.media.Delete(ctx, objectKey); delErr != nil {
			s.log.ErrorErr("failed to clean up geo media", delErr, "object_key", objectKey)
		}
		return nil, err
	}
	return updated, nil
}

// MediaURLs resolves a point's stored media keys into presigned URLs.
func (s *GeoService) MediaURLs(ctx context.Context, id uuid.UUID) ([]string, error) {
	point, err := s.geoRepo.GeoPointByID(ctx, id)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(point.MediaKeys))
	for _, key := range point.MediaKeys {
		u, err := s.media.URL(ctx, key)
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}
