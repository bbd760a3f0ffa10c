package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/wichananm65/profile-registry/internal/domain/repository"
)

const (
	// HandlePrefix is the URL path under which stored pictures are served.
	HandlePrefix = "/api/v1/images/"
	keyPrefix    = "profilePicture:"

	// ThumbnailWidth and ThumbnailHeight bound the table's picture cell.
	ThumbnailWidth  = 350
	ThumbnailHeight = 150
)

var (
	ErrNotFound     = errors.New("image not found")
	ErrInvalidImage = errors.New("file is not a decodable image")
)

// Service keeps picture bytes in the key-value repository so that handles
// stay resolvable across restarts.
type Service struct {
	kv repository.KeyValueRepository
}

func NewService(kv repository.KeyValueRepository) *Service {
	return &Service{kv: kv}
}

// Save stores data and returns its handle.
func (s *Service) Save(ctx context.Context, data []byte) (string, error) {
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	id := uuid.NewString()
	if err := s.kv.Set(ctx, keyPrefix+id, data); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return HandlePrefix + id, nil
}

// Open returns the stored bytes of an image id.
func (s *Service) Open(ctx context.Context, id string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	data, err := s.kv.Get(ctx, keyPrefix+id)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Thumbnail scales the image down to fit the table cell, keeping its aspect
// ratio, and encodes it as PNG.
func (s *Service) Thumbnail(ctx context.Context, id string) ([]byte, error) {
	data, err := s.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	thumb := imaging.Fit(img, ThumbnailWidth, ThumbnailHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// Delete removes the image behind a handle. Handles this service did not
// issue are ignored.
func (s *Service) Delete(ctx context.Context, handle string) error {
	id, ok := IDFromHandle(handle)
	if !ok {
		return nil
	}
	if err := s.kv.Delete(ctx, keyPrefix+id); err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// IDFromHandle extracts the image id from a handle issued by Save.
func IDFromHandle(handle string) (string, bool) {
	if !strings.HasPrefix(handle, HandlePrefix) {
		return "", false
	}
	id := strings.TrimPrefix(handle, HandlePrefix)
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
