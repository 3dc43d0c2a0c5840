package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/erazemk/inventorypro/internal/kv"
)

// imageKeyPrefix prefixes the kv key of each item picture.
const imageKeyPrefix = "inventory_images:"

// ImageStore keeps one JPEG picture per inventory item.
type ImageStore struct {
	kv kv.Store
}

// NewImageStore returns an image store backed by store.
func NewImageStore(store kv.Store) *ImageStore {
	return &ImageStore{kv: store}
}

// Set stores an item's image data.
func (s *ImageStore) Set(ctx context.Context, itemID string, image []byte) error {
	if err := s.kv.Set(ctx, imageKeyPrefix+itemID, image); err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return nil
}

// Get returns an item's image data, or nil if it has none.
func (s *ImageStore) Get(ctx context.Context, itemID string) ([]byte, error) {
	image, err := s.kv.Get(ctx, imageKeyPrefix+itemID)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item image: %w", err)
	}
	return image, nil
}

// Delete drops an item's image. Deleting a missing image is not an error.
func (s *ImageStore) Delete(ctx context.Context, itemID string) error {
	if err := s.kv.Delete(ctx, imageKeyPrefix+itemID); err != nil {
		return fmt.Errorf("deleting item image: %w", err)
	}
	return nil
}
