package store

import (
	"fmt"
	"slices"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/samber/lo"
)

// TravelData is the aggregate of every customer, itinerary and booking, kept in
// insertion order. Accessors return copies; mutation goes through the methods
// below. It is not safe for concurrent use, see Ledger.
type TravelData struct {
	customers   []domain.Customer
	itineraries []domain.Itinerary
	bookings    []domain.Booking
}

// Snapshot is the serialisable form of TravelData.
type Snapshot struct {
	Customers   []domain.Customer
	Itineraries []domain.Itinerary
	Bookings    []domain.Booking
}

func New() *TravelData {
	return &TravelData{}
}

// FromSnapshot validates every entity of s and builds a TravelData from copies of its sequences.
func FromSnapshot(s Snapshot) (*TravelData, error) {
	d := New()
	if err := d.SetCustomers(s.Customers); err != nil {
		return nil, fmt.Errorf("customers: %w", err)
	}
	if err := d.SetItineraries(s.Itineraries); err != nil {
		return nil, fmt.Errorf("itineraries: %w", err)
	}
	if err := d.SetBookings(s.Bookings); err != nil {
		return nil, fmt.Errorf("bookings: %w", err)
	}
	return d, nil
}

func (d *TravelData) Snapshot() Snapshot {
	return Snapshot{
		Customers:   d.Customers(),
		Itineraries: d.Itineraries(),
		Bookings:    d.Bookings(),
	}
}

func (d *TravelData) Customers() []domain.Customer {
	return slices.Clone(d.customers)
}

func (d *TravelData) Customer(id string) (domain.Customer, bool) {
	return lo.Find(d.customers, func(c domain.Customer) bool { return c.ID == id })
}

func (d *TravelData) AddCustomer(c domain.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	d.customers = append(d.customers, c)
	return nil
}

// RemoveCustomer drops the first customer structurally equal to c. Bookings are left alone.
func (d *TravelData) RemoveCustomer(c domain.Customer) bool {
	var ok bool
	d.customers, ok = removeFirst(d.customers, c)
	return ok
}

func (d *TravelData) ReplaceCustomer(c domain.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return replaceByID(d.customers, c, func(x domain.Customer) string { return x.ID })
}

func (d *TravelData) SetCustomers(customers []domain.Customer) error {
	if err := validateAll(customers); err != nil {
		return err
	}
	d.customers = slices.Clone(customers)
	return nil
}

func (d *TravelData) Itineraries() []domain.Itinerary {
	return slices.Clone(d.itineraries)
}

func (d *TravelData) Itinerary(id string) (domain.Itinerary, bool) {
	return lo.Find(d.itineraries, func(it domain.Itinerary) bool { return it.ID == id })
}

func (d *TravelData) AddItinerary(it domain.Itinerary) error {
	if err := it.Validate(); err != nil {
		return err
	}
	d.itineraries = append(d.itineraries, it)
	return nil
}

func (d *TravelData) RemoveItinerary(it domain.Itinerary) bool {
	var ok bool
	d.itineraries, ok = removeFirst(d.itineraries, it)
	return ok
}

func (d *TravelData) ReplaceItinerary(it domain.Itinerary) error {
	if err := it.Validate(); err != nil {
		return err
	}
	return replaceByID(d.itineraries, it, func(x domain.Itinerary) string { return x.ID })
}

func (d *TravelData) SetItineraries(itineraries []domain.Itinerary) error {
	if err := validateAll(itineraries); err != nil {
		return err
	}
	d.itineraries = slices.Clone(itineraries)
	return nil
}

func (d *TravelData) Bookings() []domain.Booking {
	return slices.Clone(d.bookings)
}

func (d *TravelData) Booking(id string) (domain.Booking, bool) {
	return lo.Find(d.bookings, func(b domain.Booking) bool { return b.ID == id })
}

func (d *TravelData) AddBooking(b domain.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}
	d.bookings = append(d.bookings, b)
	return nil
}

// RemoveBooking exists for completeness; the booking workflow never deletes, it cancels.
func (d *TravelData) RemoveBooking(b domain.Booking) bool {
	var ok bool
	d.bookings, ok = removeFirst(d.bookings, b)
	return ok
}

func (d *TravelData) ReplaceBooking(b domain.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return replaceByID(d.bookings, b, func(x domain.Booking) string { return x.ID })
}

func (d *TravelData) SetBookings(bookings []domain.Booking) error {
	if err := validateAll(bookings); err != nil {
		return err
	}
	d.bookings = slices.Clone(bookings)
	return nil
}

type validatable interface {
	Validate() error
}

func validateAll[T validatable](items []T) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

func removeFirst[T comparable](items []T, item T) ([]T, bool) {
	i := lo.IndexOf(items, item)
	if i < 0 {
		return items, false
	}
	return slices.Delete(items, i, i+1), true
}

func replaceByID[T any](items []T, item T, id func(T) string) error {
	_, i, ok := lo.FindIndexOf(items, func(x T) bool { return id(x) == id(item) })
	if !ok {
		return fmt.Errorf("%s: %w", id(item), domain.ErrNotFound)
	}
	items[i] = item
	return nil
}
