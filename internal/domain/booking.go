package domain

import "github.com/google/uuid"

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer_id"`
	ItineraryID string `json:"itinerary_id"`
	BookingDate Date   `json:"booking_date"`
	Cancelled   bool   `json:"cancelled"`
}

func NewBooking(customerID, itineraryID string, bookingDate Date) (Booking, error) {
	b := Booking{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		ItineraryID: itineraryID,
		BookingDate: bookingDate,
	}
	if err := b.Validate(); err != nil {
		return Booking{}, err
	}
	return b, nil
}

func (b Booking) Validate() error {
	if err := required("id", b.ID); err != nil {
		return err
	}
	if err := required("customer", b.CustomerID); err != nil {
		return err
	}
	if err := required("itinerary", b.ItineraryID); err != nil {
		return err
	}
	if b.BookingDate.IsZero() {
		return &FieldError{Field: "booking_date", Reason: "must be set"}
	}
	return nil
}

func (b *Booking) SetCustomer(customerID string) error {
	if err := required("customer", customerID); err != nil {
		return err
	}
	b.CustomerID = customerID
	return nil
}

func (b *Booking) SetItinerary(itineraryID string) error {
	if err := required("itinerary", itineraryID); err != nil {
		return err
	}
	b.ItineraryID = itineraryID
	return nil
}

func (b *Booking) SetBookingDate(date Date) error {
	if date.IsZero() {
		return &FieldError{Field: "booking_date", Reason: "must be set"}
	}
	b.BookingDate = date
	return nil
}

// Cancel moves an active booking to cancelled. There is no way back.
func (b *Booking) Cancel() error {
	if b.Cancelled {
		return ErrAlreadyCancelled
	}
	b.Cancelled = true
	return nil
}

func (b Booking) Status() BookingStatus {
	if b.Cancelled {
		return BookingStatusCancelled
	}
	return BookingStatusActive
}

func (b Booking) Equal(other Booking) bool {
	return b == other
}
