package repository

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

var (
	customerColumns  = []string{"position", "id", "name", "email", "phone"}
	itineraryColumns = []string{"position", "id", "destination", "travel_date", "available_seats", "cost_cents", "transport_type"}
	bookingColumns   = []string{"position", "id", "customer_id", "itinerary_id", "booking_date", "cancelled"}
)

// PGSnapshotStore keeps the whole aggregate in PostgreSQL. Every Save replaces
// all rows inside one transaction.
type PGSnapshotStore struct {
	db *pgxpool.Pool
}

func NewPGSnapshotStore(db *pgxpool.Pool) *PGSnapshotStore {
	return &PGSnapshotStore{db: db}
}

func (r *PGSnapshotStore) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *PGSnapshotStore) Load(ctx context.Context) (*store.TravelData, error) {
	var snap store.Snapshot
	var err error

	if snap.Customers, err = r.loadCustomers(ctx); err != nil {
		return nil, &domain.PersistenceError{Op: "load customers", Err: err}
	}
	if snap.Itineraries, err = r.loadItineraries(ctx); err != nil {
		return nil, &domain.PersistenceError{Op: "load itineraries", Err: err}
	}
	if snap.Bookings, err = r.loadBookings(ctx); err != nil {
		return nil, &domain.PersistenceError{Op: "load bookings", Err: err}
	}

	data, err := store.FromSnapshot(snap)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load travel data", Err: err}
	}
	return data, nil
}

func (r *PGSnapshotStore) Save(ctx context.Context, data *store.TravelData) error {
	snap := data.Snapshot()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return &domain.PersistenceError{Op: "begin save", Err: err}
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bookings`); err != nil {
		return &domain.PersistenceError{Op: "clear bookings", Err: err}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM itineraries`); err != nil {
		return &domain.PersistenceError{Op: "clear itineraries", Err: err}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM customers`); err != nil {
		return &domain.PersistenceError{Op: "clear customers", Err: err}
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"customers"}, customerColumns, pgx.CopyFromRows(customerRows(snap.Customers))); err != nil {
		return &domain.PersistenceError{Op: "copy customers", Err: err}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"itineraries"}, itineraryColumns, pgx.CopyFromRows(itineraryRows(snap.Itineraries))); err != nil {
		return &domain.PersistenceError{Op: "copy itineraries", Err: err}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"bookings"}, bookingColumns, pgx.CopyFromRows(bookingRows(snap.Bookings))); err != nil {
		return &domain.PersistenceError{Op: "copy bookings", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return &domain.PersistenceError{Op: "commit save", Err: err}
	}
	return nil
}

func (r *PGSnapshotStore) loadCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, phone FROM customers ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *PGSnapshotStore) loadItineraries(ctx context.Context) ([]domain.Itinerary, error) {
	rows, err := r.db.Query(ctx, `SELECT id, destination, travel_date, available_seats, cost_cents, transport_type FROM itineraries ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	itineraries := make([]domain.Itinerary, 0)
	for rows.Next() {
		var it domain.Itinerary
		var date time.Time
		var cost int64
		if err := rows.Scan(&it.ID, &it.Destination, &date, &it.AvailableSeats, &cost, &it.TransportType); err != nil {
			return nil, err
		}
		it.Date = domain.DateOf(date)
		it.Cost = domain.Money(cost)
		itineraries = append(itineraries, it)
	}
	return itineraries, rows.Err()
}

func (r *PGSnapshotStore) loadBookings(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, customer_id, itinerary_id, booking_date, cancelled FROM bookings ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		var date time.Time
		if err := rows.Scan(&b.ID, &b.CustomerID, &b.ItineraryID, &date, &b.Cancelled); err != nil {
			return nil, err
		}
		b.BookingDate = domain.DateOf(date)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func customerRows(customers []domain.Customer) [][]any {
	rows := make([][]any, 0, len(customers))
	for i, c := range customers {
		rows = append(rows, []any{i, c.ID, c.Name, c.Email, c.Phone})
	}
	return rows
}

func itineraryRows(itineraries []domain.Itinerary) [][]any {
	rows := make([][]any, 0, len(itineraries))
	for i, it := range itineraries {
		rows = append(rows, []any{i, it.ID, it.Destination, it.Date.Time(), it.AvailableSeats, int64(it.Cost), it.TransportType})
	}
	return rows
}

func bookingRows(bookings []domain.Booking) [][]any {
	rows := make([][]any, 0, len(bookings))
	for i, b := range bookings {
		rows = append(rows, []any{i, b.ID, b.CustomerID, b.ItineraryID, b.BookingDate.Time(), b.Cancelled})
	}
	return rows
}

var _ store.Persister = (*PGSnapshotStore)(nil)
