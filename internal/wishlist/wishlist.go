package wishlist

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mashop/storefront/internal/catalog"
	"github.com/mashop/storefront/internal/models"
)

// Store keeps at most one entry per product per session. Entries are
// product snapshots and are never mutated, only created and removed.
type Store struct {
	DB *gorm.DB
}

// Add saves a snapshot of the product, a no-op when already present.
func (s *Store) Add(ctx context.Context, sessionID string, p catalog.Product) (models.WishlistEntry, error) {
	var entry models.WishlistEntry
	tx := s.DB.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, p.ID).
		First(&entry)
	if tx.Error == nil {
		return entry, nil
	}
	if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return models.WishlistEntry{}, tx.Error
	}

	entry = models.WishlistEntry{
		SessionID: sessionID,
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Rating:    p.Rating,
		Stock:     p.Stock,
		Category:  p.Category,
		Thumbnail: p.Thumbnail,
	}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return models.WishlistEntry{}, err
	}
	return entry, nil
}

func (s *Store) Remove(ctx context.Context, sessionID string, productID int) error {
	return s.DB.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		Delete(&models.WishlistEntry{}).Error
}

func (s *Store) Contains(ctx context.Context, sessionID string, productID int) (bool, error) {
	var n int64
	if err := s.DB.WithContext(ctx).
		Model(&models.WishlistEntry{}).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns the entries in insertion order.
func (s *Store) List(ctx context.Context, sessionID string) ([]models.WishlistEntry, error) {
	var entries []models.WishlistEntry
	if err := s.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
