package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Price       float64        `json:"price" gorm:"not null"`
	Category    string         `json:"category"`
	Images      datatypes.JSON `json:"images"`
	Stock       int            `json:"stock" gorm:"default:0"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ImageURLs decodes the JSON images column. A missing or malformed column
// decodes as no images.
func (p *Product) ImageURLs() []string {
	if len(p.Images) == 0 {
		return nil
	}
	var urls []string
	if err := json.Unmarshal(p.Images, &urls); err != nil {
		return nil
	}
	return urls
}

// PrimaryImage returns the first product image, or fallback when the product
// has none.
func (p *Product) PrimaryImage(fallback string) string {
	if urls := p.ImageURLs(); len(urls) > 0 && urls[0] != "" {
		return urls[0]
	}
	return fallback
}
