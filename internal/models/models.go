package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null"             json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Item struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null"             json:"name"`
	Description string    `gorm:"not null"             json:"description"`
	Price       float64   `gorm:"not null"             json:"price"`
	Category    string    `gorm:"not null;index"       json:"category"`
	Image       string    `json:"image"`
	Stock       uint      `gorm:"default:10"           json:"stock"`
	InStock     bool      `gorm:"default:true"         json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// CartLine is one (item, quantity) entry of a user's cart. The
// auto-increment ID doubles as insertion order; the unique index keeps
// at most one line per item per user.
type CartLine struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                     json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_item;not null" json:"user_id"`
	ItemID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_item;not null" json:"item_id"`
	Quantity  uint      `gorm:"not null;check:quantity>0"                    json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartLine) TableName() string {
	return "cart_lines"
}

var Categories = []string{
	"Electronics",
	"Clothing",
	"Books",
	"Home",
	"Sports",
	"Beauty",
}

func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
