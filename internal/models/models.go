package models

import (
	"time"
)

// SchemaVersion is stamped on persisted records whose payloads used to be
// ad hoc JSON blobs. Readers treat records with an unknown version as empty.
const SchemaVersion = 1

type LocalUser struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `gorm:"not null"                 json:"role"`
}

type Session struct {
	ID           string    `gorm:"primaryKey"     json:"id"`
	UserID       int       `gorm:"index;not null" json:"userId"`
	Username     string    `gorm:"not null"       json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Gender       string    `json:"gender"`
	Image        string    `json:"image"`
	Role         string    `gorm:"not null"       json:"role"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CartItem struct {
	ID                 uint      `gorm:"primaryKey"                            json:"id"`
	SessionID          string    `gorm:"index:idx_cart_session_product,unique" json:"-"`
	ProductID          int       `gorm:"index:idx_cart_session_product,unique" json:"productId"`
	Title              string    `json:"title"`
	Price              float64   `json:"price"`
	DiscountPercentage float64   `json:"discountPercentage"`
	Stock              int       `json:"stock"`
	Thumbnail          string    `json:"thumbnail"`
	Quantity           int       `gorm:"default:1;check:quantity>0"            json:"quantity"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`
}

type WishlistEntry struct {
	ID        uint      `gorm:"primaryKey"                                json:"id"`
	SessionID string    `gorm:"index:idx_wishlist_session_product,unique" json:"-"`
	ProductID int       `gorm:"index:idx_wishlist_session_product,unique" json:"productId"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Rating    float64   `json:"rating"`
	Stock     int       `json:"stock"`
	Category  string    `json:"category"`
	Thumbnail string    `json:"thumbnail"`
	CreatedAt time.Time `json:"createdAt"`
}

type Order struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	SessionID string    `gorm:"index"          json:"-"`
	UserID    int       `gorm:"index;not null" json:"userId"`
	Username  string    `json:"username"`
	Subtotal  float64   `json:"subtotal"`
	Tax       float64   `json:"tax"`
	Total     float64   `json:"total"`
	Version   int       `gorm:"not null"       json:"-"`
	CreatedAt time.Time `json:"timestamp"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey"     json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"-"`
	ProductID int     `gorm:"not null"       json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type ActivityRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Actor     string    `gorm:"index"      json:"actor"`
	Type      string    `gorm:"index"      json:"type"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Version   int       `gorm:"not null"   json:"-"`
	CreatedAt time.Time `json:"timestamp"`
}
