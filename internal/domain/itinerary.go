package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Transport types offered by the itinerary form. Any non-empty value is accepted.
var TransportTypes = []string{"plane", "train", "bus"}

type Itinerary struct {
	ID             string `json:"id"`
	Destination    string `json:"destination"`
	Date           Date   `json:"date"`
	AvailableSeats int    `json:"available_seats"`
	Cost           Money  `json:"cost"`
	TransportType  string `json:"transport_type"`
}

func NewItinerary(destination string, date Date, seats int, cost Money, transportType string) (Itinerary, error) {
	it := Itinerary{
		ID:             uuid.NewString(),
		Destination:    destination,
		Date:           date,
		AvailableSeats: seats,
		Cost:           cost,
		TransportType:  transportType,
	}
	if err := it.Validate(); err != nil {
		return Itinerary{}, err
	}
	return it, nil
}

func (it Itinerary) Validate() error {
	if err := required("id", it.ID); err != nil {
		return err
	}
	if err := required("destination", it.Destination); err != nil {
		return err
	}
	if it.Date.IsZero() {
		return &FieldError{Field: "date", Reason: "must be set"}
	}
	if err := nonNegative("available_seats", int64(it.AvailableSeats)); err != nil {
		return err
	}
	if err := nonNegative("cost", int64(it.Cost)); err != nil {
		return err
	}
	return required("transport_type", it.TransportType)
}

func (it *Itinerary) SetDestination(destination string) error {
	if err := required("destination", destination); err != nil {
		return err
	}
	it.Destination = destination
	return nil
}

func (it *Itinerary) SetDate(date Date) error {
	if date.IsZero() {
		return &FieldError{Field: "date", Reason: "must be set"}
	}
	it.Date = date
	return nil
}

func (it *Itinerary) SetAvailableSeats(seats int) error {
	if err := nonNegative("available_seats", int64(seats)); err != nil {
		return err
	}
	it.AvailableSeats = seats
	return nil
}

func (it *Itinerary) SetCost(cost Money) error {
	if err := nonNegative("cost", int64(cost)); err != nil {
		return err
	}
	it.Cost = cost
	return nil
}

func (it *Itinerary) SetTransportType(transportType string) error {
	if err := required("transport_type", transportType); err != nil {
		return err
	}
	it.TransportType = transportType
	return nil
}

// ReserveSeat takes one seat off the itinerary.
func (it *Itinerary) ReserveSeat() error {
	if it.AvailableSeats <= 0 {
		return ErrNoAvailability
	}
	it.AvailableSeats--
	return nil
}

// ReleaseSeat gives one seat back. There is no capacity ceiling.
func (it *Itinerary) ReleaseSeat() {
	it.AvailableSeats++
}

func (it Itinerary) Equal(other Itinerary) bool {
	return it == other
}

func (it Itinerary) String() string {
	return fmt.Sprintf("%s - %s (%d seats, %s, %s)", it.Destination, it.Date, it.AvailableSeats, it.Cost, it.TransportType)
}
