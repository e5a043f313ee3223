package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Customer is a buyer known by their WhatsApp number.
type Customer struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Phone string    `gorm:"type:text;unique;not null" json:"phone"`
	Name  string    `gorm:"type:text" json:"name"`

	// Tags holds merchant-assigned segment labels (e.g. "wholesale", "vip")
	Tags pq.StringArray `gorm:"type:text[]" json:"tags"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate sets UUID before creating
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
