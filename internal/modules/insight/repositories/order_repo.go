package repositories

import (
	"encoding/json"
	"time"

	"github.com/ordelia/order-insight-be/internal/core/insight"
	"github.com/ordelia/order-insight-be/internal/modules/insight/models"
	"gorm.io/gorm"
)

// OrderRepo is the durable store for ingested orders and the record source
// feeding the insight engine. Record methods return an empty collection, not
// an error, when nothing matches the window.
type OrderRepo interface {
	Create(order *models.Order) error
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	GetByDateRange(start, end time.Time) ([]models.Order, error)
	Records(start, end time.Time) ([]insight.Record, error)
	ItemRecords(start, end time.Time) ([]insight.Record, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepo {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepo) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.Where("order_number = ?", orderNumber).First(&order).Error
	return &order, err
}

func (r *orderRepo) GetByDateRange(start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

// Records flattens orders in the window into the flat shape the insight
// engine consumes, embedding the decoded item list under "items".
func (r *orderRepo) Records(start, end time.Time) ([]insight.Record, error) {
	orders, err := r.GetByDateRange(start, end)
	if err != nil {
		return nil, err
	}

	records := make([]insight.Record, 0, len(orders))
	for _, order := range orders {
		records = append(records, insight.Record{
			"order_id":       order.ID.String(),
			"user_id":        order.CustomerID.String(),
			"user_name":      order.CustomerName,
			"amount":         order.TotalAmount,
			"delivery_mode":  order.DeliveryMode,
			"payment_method": order.PaymentMethod,
			"date":           order.CreatedAt,
			"items":          embeddedItemRecords(order.Items),
		})
	}
	return records, nil
}

// ItemRecords explodes each order's embedded items into flat item records,
// inheriting the order's date.
func (r *orderRepo) ItemRecords(start, end time.Time) ([]insight.Record, error) {
	orders, err := r.GetByDateRange(start, end)
	if err != nil {
		return nil, err
	}

	var records []insight.Record
	for _, order := range orders {
		for _, item := range decodeItems(order.Items) {
			records = append(records, insight.Record{
				"order_id":  order.ID.String(),
				"item_id":   item.ProductID,
				"item_name": item.ProductName,
				"quantity":  float64(item.Quantity),
				"price":     item.Price,
				"date":      order.CreatedAt,
			})
		}
	}
	if records == nil {
		records = []insight.Record{}
	}
	return records, nil
}

func embeddedItemRecords(raw []byte) []insight.Record {
	items := decodeItems(raw)
	records := make([]insight.Record, 0, len(items))
	for _, item := range items {
		records = append(records, insight.Record{
			"product_id":   item.ProductID,
			"product_name": item.ProductName,
			"quantity":     float64(item.Quantity),
			"price":        item.Price,
		})
	}
	return records
}

func decodeItems(raw []byte) []models.OrderItem {
	var items []models.OrderItem
	if len(raw) == 0 {
		return items
	}
	// Malformed item payloads degrade to an empty list rather than failing
	// the whole analysis window.
	_ = json.Unmarshal(raw, &items)
	return items
}
