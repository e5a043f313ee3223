package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderItem represents a single item in an order
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

// Order represents an ingested customer order
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrderNumber string    `gorm:"type:text;unique;not null" json:"order_number"`

	// Customer
	CustomerID    uuid.UUID `gorm:"type:uuid;not null" json:"customer_id"`
	CustomerPhone string    `gorm:"type:text;not null" json:"customer_phone"`
	CustomerName  string    `gorm:"type:text" json:"customer_name"`

	// Order Details
	Items       datatypes.JSON `gorm:"type:jsonb;not null" json:"items"`
	TotalAmount float64        `gorm:"type:decimal(12,2);not null" json:"total_amount"`

	DeliveryMode  string `gorm:"type:text" json:"delivery_mode"`
	PaymentMethod string `gorm:"type:text" json:"payment_method"`
	Status        string `gorm:"type:text;default:'received'" json:"status"`

	// Timestamps
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate sets UUID before creating
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Order status constants
const (
	StatusReceived  = "received"
	StatusConfirmed = "confirmed"
	StatusFulfilled = "fulfilled"
	StatusCancelled = "cancelled"

	// Delivery modes
	DeliveryPickup  = "pickup"
	DeliveryCourier = "courier"
	DeliveryCOD     = "cod"

	// Payment methods
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"
	PaymentEwallet  = "ewallet"
)
