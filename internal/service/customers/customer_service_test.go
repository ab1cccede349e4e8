package customers

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPersister struct{}

func (failingPersister) Load(ctx context.Context) (*store.TravelData, error) {
	return store.New(), nil
}

func (failingPersister) Save(ctx context.Context, data *store.TravelData) error {
	return errors.New("read-only filesystem")
}

func validInput() CustomerInput {
	return CustomerInput{Name: "Nikos", Email: "nikos@example.com", Phone: "2100000000"}
}

func TestCustomerService_Create(t *testing.T) {
	service := NewCustomerService(store.NewLedger(nil, nil, nil), nil)
	ctx := context.Background()

	created, err := service.Create(ctx, CustomerInput{Name: "  Nikos ", Email: "nikos@example.com", Phone: "2100000000"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Nikos", created.Name)

	list, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Customer{*created}, list)
}

func TestCustomerService_Create_RequiresAllFields(t *testing.T) {
	service := NewCustomerService(store.NewLedger(nil, nil, nil), nil)

	testCases := []struct {
		name  string
		input CustomerInput
		field string
	}{
		{name: "no name", input: CustomerInput{Email: "a@b.c", Phone: "1"}, field: "name"},
		{name: "no email", input: CustomerInput{Name: "A", Phone: "1"}, field: "email"},
		{name: "blank phone", input: CustomerInput{Name: "A", Email: "a@b.c", Phone: "   "}, field: "phone"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)

			var fieldErr *domain.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tc.field, fieldErr.Field)
		})
	}

	list, _ := service.List(context.Background())
	assert.Empty(t, list)
}

func TestCustomerService_Update(t *testing.T) {
	service := NewCustomerService(store.NewLedger(nil, nil, nil), nil)
	ctx := context.Background()

	created, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, CustomerInput{Name: "Nikos P.", Email: "np@example.com", Phone: "2101111111"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Nikos P.", updated.Name)

	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestCustomerService_Update_NotFound(t *testing.T) {
	service := NewCustomerService(store.NewLedger(nil, nil, nil), nil)

	_, err := service.Update(context.Background(), "missing", validInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerService_Delete(t *testing.T) {
	service := NewCustomerService(store.NewLedger(nil, nil, nil), nil)
	ctx := context.Background()

	created, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))
	_, err = service.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, service.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestCustomerService_Delete_KeepsBookings(t *testing.T) {
	data := store.New()
	customer, err := domain.NewCustomer("Maria", "", "")
	require.NoError(t, err)
	require.NoError(t, data.AddCustomer(customer))
	booking, err := domain.NewBooking(customer.ID, "itinerary-1", domain.NewDate(2025, 1, 2))
	require.NoError(t, err)
	require.NoError(t, data.AddBooking(booking))

	ledger := store.NewLedger(data, nil, nil)
	service := NewCustomerService(ledger, nil)
	require.NoError(t, service.Delete(context.Background(), customer.ID))

	ledger.View(func(data *store.TravelData) {
		assert.Empty(t, data.Customers())
		assert.Equal(t, []domain.Booking{booking}, data.Bookings())
	})
}

func TestCustomerService_Create_PersistenceFailure(t *testing.T) {
	service := NewCustomerService(store.NewLedger(nil, failingPersister{}, nil), nil)
	ctx := context.Background()

	created, err := service.Create(ctx, validInput())
	assert.ErrorIs(t, err, domain.ErrPersistence)
	require.NotNil(t, created)

	list, _ := service.List(ctx)
	assert.Len(t, list, 1)
}
