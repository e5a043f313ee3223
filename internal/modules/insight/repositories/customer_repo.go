package repositories

import (
	"errors"

	"github.com/ordelia/order-insight-be/internal/core/insight"
	"github.com/ordelia/order-insight-be/internal/modules/insight/models"
	"gorm.io/gorm"
)

// CustomerRepo stores the buyers known to the relay.
type CustomerRepo interface {
	GetByPhone(phone string) (*models.Customer, error)
	UpsertByPhone(phone, name string) (*models.Customer, error)
	Records() ([]insight.Record, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepo {
	return &customerRepo{db: db}
}

func (r *customerRepo) GetByPhone(phone string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("phone = ?", phone).First(&customer).Error
	return &customer, err
}

// UpsertByPhone returns the existing customer for the phone number, creating
// one first if needed. A non-empty name refreshes a previously blank record.
func (r *customerRepo) UpsertByPhone(phone, name string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("phone = ?", phone).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{Phone: phone, Name: name}
		if err := r.db.Create(&customer).Error; err != nil {
			return nil, err
		}
		return &customer, nil
	}
	if err != nil {
		return nil, err
	}

	if name != "" && customer.Name == "" {
		customer.Name = name
		if err := r.db.Save(&customer).Error; err != nil {
			return nil, err
		}
	}
	return &customer, nil
}

// Records flattens all customers into the user-record shape the insight
// engine consumes.
func (r *customerRepo) Records() ([]insight.Record, error) {
	var customers []models.Customer
	if err := r.db.Find(&customers).Error; err != nil {
		return nil, err
	}

	records := make([]insight.Record, 0, len(customers))
	for _, c := range customers {
		records = append(records, insight.Record{
			"user_id":    c.ID.String(),
			"name":       c.Name,
			"mobile":     c.Phone,
			"created_at": c.CreatedAt,
		})
	}
	return records, nil
}
