package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/travelbooking/internal/kafka"
	"github.com/Domenick1991/travelbooking/internal/logger"
)

// Sender turns booking events into customer notices. Delivery is a log line.
type Sender struct {
	log *logger.Logger
}

func NewSender(log *logger.Logger) *Sender {
	if log == nil {
		log = logger.Nop()
	}
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.CustomerEmail == "" {
		s.log.Info("skip notice, customer has no email", "booking_id", event.BookingID, "type", event.Type)
		return nil
	}
	s.log.Info("send email",
		"to", event.CustomerEmail,
		"subject", Subject(event),
		"booking_id", event.BookingID,
	)
	return nil
}

func Subject(event kafka.BookingEvent) string {
	switch event.Type {
	case kafka.EventBookingCreated:
		return fmt.Sprintf("Your trip to %s on %s is booked", event.Destination, event.TravelDate)
	case kafka.EventBookingCancelled:
		return fmt.Sprintf("Your trip to %s on %s was cancelled", event.Destination, event.TravelDate)
	default:
		return fmt.Sprintf("Update on your booking %s", event.BookingID)
	}
}
