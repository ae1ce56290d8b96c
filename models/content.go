package models

import (
	"time"

	"gorm.io/datatypes"
)

// Well-known content document IDs.
const (
	DocSettings   = "settings"
	DocThemes     = "themes"
	DocNavigation = "navigation"
	DocHomepage   = "homepage"
)

// ContentDocument holds one externally authored website-content document
// (settings, themes, navigation, or per-page content) as raw JSON, keyed by
// a string document ID.
type ContentDocument struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	DocID     string         `json:"doc_id" gorm:"uniqueIndex;not null"`
	Data      datatypes.JSON `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CartSlot is the per-user persistent slot the cart and wishlist are
// mirrored to after every mutation. Items and Wishlist are stored verbatim
// as JSON lists; an absent slot reads back as empty.
type CartSlot struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserUID   string         `json:"user_uid" gorm:"uniqueIndex;not null"`
	Items     datatypes.JSON `json:"items"`
	Wishlist  datatypes.JSON `json:"wishlist"`
	UpdatedAt time.Time      `json:"updated_at"`
}
