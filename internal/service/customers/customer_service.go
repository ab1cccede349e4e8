package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/logger"
	"github.com/Domenick1991/travelbooking/internal/store"
)

type CustomerUseCase interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, input CustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, id string, input CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate requires every field, as the customer form does.
func (in CustomerInput) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"name", in.Name},
		{"email", in.Email},
		{"phone", in.Phone},
	} {
		if strings.TrimSpace(f.value) == "" {
			return &domain.FieldError{Field: f.name, Reason: "must not be empty"}
		}
	}
	return nil
}

type CustomerService struct {
	ledger *store.Ledger
	log    *logger.Logger
}

func NewCustomerService(ledger *store.Ledger, log *logger.Logger) *CustomerService {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerService{ledger: ledger, log: log}
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	s.ledger.View(func(data *store.TravelData) {
		customers = data.Customers()
	})
	return customers, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	var customer domain.Customer
	var ok bool
	s.ledger.View(func(data *store.TravelData) {
		customer, ok = data.Customer(id)
	})
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	return &customer, nil
}

func (s *CustomerService) Create(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	customer, err := domain.NewCustomer(strings.TrimSpace(input.Name), strings.TrimSpace(input.Email), strings.TrimSpace(input.Phone))
	if err != nil {
		return nil, err
	}

	err = s.ledger.Update(ctx, func(data *store.TravelData) error {
		return data.AddCustomer(customer)
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, err
	}
	s.log.Info("customer created", "customer_id", customer.ID)
	return &customer, err
}

func (s *CustomerService) Update(ctx context.Context, id string, input CustomerInput) (*domain.Customer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated domain.Customer
	err := s.ledger.Update(ctx, func(data *store.TravelData) error {
		customer, ok := data.Customer(id)
		if !ok {
			return fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
		}
		if err := customer.SetName(strings.TrimSpace(input.Name)); err != nil {
			return err
		}
		customer.SetEmail(strings.TrimSpace(input.Email))
		customer.SetPhone(strings.TrimSpace(input.Phone))
		if err := data.ReplaceCustomer(customer); err != nil {
			return err
		}
		updated = customer
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, err
	}
	s.log.Info("customer updated", "customer_id", id)
	return &updated, err
}

// Delete removes the customer only. Bookings that reference it are kept.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	err := s.ledger.Update(ctx, func(data *store.TravelData) error {
		customer, ok := data.Customer(id)
		if !ok {
			return fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
		}
		data.RemoveCustomer(customer)
		return nil
	})
	if err == nil || errors.Is(err, domain.ErrPersistence) {
		s.log.Info("customer deleted", "customer_id", id)
	}
	return err
}

var _ CustomerUseCase = (*CustomerService)(nil)
