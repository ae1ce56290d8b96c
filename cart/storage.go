package cart

import (
	"encoding/json"
	"errors"

	"studio-akira-api/models"

	"gorm.io/gorm"
)

// Store persists carts and wishlists to per-user slots, one JSON list per
// key. Loading a slot that does not exist yields empty state.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Load rehydrates the user's cart from their slot.
func (s *Store) Load(userUID string) (*Cart, error) {
	var slot models.CartSlot
	if err := s.db.Where("user_uid = ?", userUID).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return New(), nil
		}
		return nil, err
	}
	return FromJSON(slot.Items), nil
}

// Save writes the full entry list back to the user's slot, creating the
// slot on first use.
func (s *Store) Save(userUID string, c *Cart) error {
	raw, err := c.JSON()
	if err != nil {
		return err
	}
	return s.upsert(userUID, "items", raw)
}

// LoadWishlist returns the user's wishlisted product IDs.
func (s *Store) LoadWishlist(userUID string) ([]uint, error) {
	var slot models.CartSlot
	if err := s.db.Where("user_uid = ?", userUID).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if len(slot.Wishlist) == 0 {
		return nil, nil
	}
	var ids []uint
	if err := json.Unmarshal(slot.Wishlist, &ids); err != nil {
		return nil, nil
	}
	return ids, nil
}

// SaveWishlist writes the wishlist back to the user's slot.
func (s *Store) SaveWishlist(userUID string, ids []uint) error {
	if ids == nil {
		ids = []uint{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.upsert(userUID, "wishlist", raw)
}

func (s *Store) upsert(userUID, column string, raw []byte) error {
	var slot models.CartSlot
	err := s.db.Where("user_uid = ?", userUID).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		slot = models.CartSlot{UserUID: userUID}
		switch column {
		case "items":
			slot.Items = raw
		case "wishlist":
			slot.Wishlist = raw
		}
		return s.db.Create(&slot).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&slot).Update(column, raw).Error
}
