package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ordelia/order-insight-be/internal/core/messaging"
	"github.com/ordelia/order-insight-be/internal/modules/insight/models"
	"github.com/ordelia/order-insight-be/internal/modules/insight/repositories"
	"github.com/ordelia/order-insight-be/internal/shared/utils"
	"gorm.io/datatypes"
)

// IngestOrderRequest is the normalized payload of an order webhook.
type IngestOrderRequest struct {
	OrderNumber   string            `json:"order_number"`
	CustomerPhone string            `json:"customer_phone"`
	CustomerName  string            `json:"customer_name"`
	DeliveryMode  string            `json:"delivery_mode"`
	PaymentMethod string            `json:"payment_method"`
	TotalAmount   float64           `json:"total_amount"`
	Items         []IngestOrderItem `json:"items"`
}

// IngestOrderItem is one line of an incoming order.
type IngestOrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// WebhookService ingests order webhooks: it persists the order and customer
// and acknowledges the buyer over the messaging gateway.
type WebhookService struct {
	orderRepo    repositories.OrderRepo
	customerRepo repositories.CustomerRepo
	provider     messaging.Provider
}

func NewWebhookService(
	orderRepo repositories.OrderRepo,
	customerRepo repositories.CustomerRepo,
	provider messaging.Provider,
) *WebhookService {
	return &WebhookService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		provider:     provider,
	}
}

// IngestOrder validates and persists an incoming order. Items without a
// quantity default to 1 and without a price to 0; they are never dropped.
// The WhatsApp acknowledgment is best effort: a gateway failure is logged,
// not surfaced, since the order is already durable.
func (s *WebhookService) IngestOrder(req *IngestOrderRequest) (*models.Order, error) {
	if req.CustomerPhone == "" {
		return nil, fmt.Errorf("customer_phone is required")
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}

	customer, err := s.customerRepo.UpsertByPhone(req.CustomerPhone, req.CustomerName)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert customer: %w", err)
	}

	items := make([]models.OrderItem, len(req.Items))
	total := 0.0
	for i, item := range req.Items {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		items[i] = models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    quantity,
			Price:       item.Price,
			Subtotal:    float64(quantity) * item.Price,
		}
		total += items[i].Subtotal
	}
	if req.TotalAmount > 0 {
		total = req.TotalAmount
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal items: %w", err)
	}

	orderNumber := req.OrderNumber
	if orderNumber == "" {
		orderNumber = generateOrderNumber()
	}

	order := &models.Order{
		OrderNumber:   orderNumber,
		CustomerID:    customer.ID,
		CustomerPhone: customer.Phone,
		CustomerName:  customer.Name,
		Items:         datatypes.JSON(itemsJSON),
		TotalAmount:   total,
		DeliveryMode:  req.DeliveryMode,
		PaymentMethod: req.PaymentMethod,
		Status:        models.StatusReceived,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	utils.LogInfo("order ingested", map[string]interface{}{
		"order_number": order.OrderNumber,
		"customer":     order.CustomerPhone,
		"total":        order.TotalAmount,
	})

	if err := s.provider.SendMessage(order.CustomerPhone, acknowledgment(order)); err != nil {
		utils.LogWarn("failed to send order acknowledgment", map[string]interface{}{
			"order_number": order.OrderNumber,
			"error":        err.Error(),
		})
	}

	return order, nil
}

func acknowledgment(order *models.Order) string {
	return fmt.Sprintf(
		"Terima kasih! Pesanan %s diterima dengan total Rp %.2f. Kami akan segera memprosesnya.",
		order.OrderNumber, order.TotalAmount,
	)
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%d", time.Now().UnixNano())
}
