package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mashop/storefront/internal/catalog"
	"github.com/mashop/storefront/internal/models"
)

// Validation failures are rejected before any state mutation and surfaced
// to the user verbatim.
var (
	ErrQuantityTooLow = errors.New("quantity must be at least 1")
	ErrEmptyCart      = errors.New("no items in cart")
)

type InsufficientStockError struct {
	Stock int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d available", e.Stock)
}

// Store keeps one line item per product per session, merged by increment.
type Store struct {
	DB *gorm.DB
}

// AddItem merges into an existing line item or creates one with a product
// snapshot. Stock is not checked at add time; SetQuantity enforces it.
func (s *Store) AddItem(ctx context.Context, sessionID string, p catalog.Product, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	var item models.CartItem
	tx := s.DB.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, p.ID).
		First(&item)
	if tx.Error == nil {
		item.Quantity += quantity
		if err := s.DB.WithContext(ctx).Save(&item).Error; err != nil {
			return models.CartItem{}, err
		}
		return item, nil
	}
	if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return models.CartItem{}, tx.Error
	}

	item = models.CartItem{
		SessionID:          sessionID,
		ProductID:          p.ID,
		Title:              p.Title,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		Stock:              p.Stock,
		Thumbnail:          p.Thumbnail,
		Quantity:           quantity,
	}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// SetQuantity replaces a line item's quantity. Out-of-bounds values are
// rejected with the prior quantity left untouched.
func (s *Store) SetQuantity(ctx context.Context, sessionID string, productID, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, ErrQuantityTooLow
	}

	var item models.CartItem
	if err := s.DB.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		First(&item).Error; err != nil {
		return models.CartItem{}, err
	}

	if item.Stock > 0 && quantity > item.Stock {
		return models.CartItem{}, &InsufficientStockError{Stock: item.Stock}
	}

	item.Quantity = quantity
	if err := s.DB.WithContext(ctx).Save(&item).Error; err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// RemoveItem deletes the line item, a no-op when absent.
func (s *Store) RemoveItem(ctx context.Context, sessionID string, productID int) error {
	return s.DB.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		Delete(&models.CartItem{}).Error
}

func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.CartItem{}).Error
}

// Items returns the line items in insertion order.
func (s *Store) Items(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Total is the sum of price*quantity over the line items.
func (s *Store) Total(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	items, err := s.Items(ctx, sessionID)
	if err != nil {
		return decimal.Zero, err
	}
	return Subtotal(items), nil
}

// Count is the sum of quantities, distinct from the line-item count.
func (s *Store) Count(ctx context.Context, sessionID string) (int, error) {
	items, err := s.Items(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n, nil
}

// Checkout snapshots the cart into an order, clears the cart and returns
// the order with its items, all in one transaction.
func (s *Store) Checkout(ctx context.Context, sessionID string, userID int, username string) (models.Order, []models.OrderItem, error) {
	var (
		order      models.Order
		orderItems []models.OrderItem
	)

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("session_id = ?", sessionID).Order("id ASC").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		totals := ComputeTotals(Subtotal(items))
		order = models.Order{
			SessionID: sessionID,
			UserID:    userID,
			Username:  username,
			Subtotal:  totals.Subtotal.InexactFloat64(),
			Tax:       totals.Tax.InexactFloat64(),
			Total:     totals.Total.InexactFloat64(),
			Version:   models.SchemaVersion,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems = make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			oi := models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Title:     it.Title,
				Price:     it.Price,
				Quantity:  it.Quantity,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			orderItems = append(orderItems, oi)
		}

		return tx.Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error
	})
	if txErr != nil {
		return models.Order{}, nil, txErr
	}
	return order, orderItems, nil
}

// Orders returns the session's order history, newest first. Orders are
// append-only; nothing here mutates or deletes them.
func (s *Store) Orders(ctx context.Context, sessionID string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.WithContext(ctx).
		Where("session_id = ? AND version = ?", sessionID, models.SchemaVersion).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) OrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
