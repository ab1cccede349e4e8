package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/travelbooking/internal/clock"
	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/kafka"
	"github.com/Domenick1991/travelbooking/internal/logger"
	"github.com/Domenick1991/travelbooking/internal/metrics"
	"github.com/Domenick1991/travelbooking/internal/store"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ItineraryCache interface {
	InvalidateItineraries(ctx context.Context) error
}

type BookingService struct {
	ledger             *store.Ledger
	producer           Producer
	cache              ItineraryCache
	clock              clock.Clock
	log                *logger.Logger
	bookingTopic       string
	notificationsTopic string
}

type CreateBookingInput struct {
	CustomerID  string `json:"customer_id"`
	ItineraryID string `json:"itinerary_id"`
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithCache(cache ItineraryCache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

func WithClock(clk clock.Clock) BookingServiceOption {
	return func(s *BookingService) {
		s.clock = clk
	}
}

func WithLogger(log *logger.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(ledger *store.Ledger, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		ledger: ledger,
		clock:  clock.NewSystem(),
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking books one seat of an itinerary for a customer, dated today.
// Nothing changes unless both exist and a seat is free. When only the save
// fails, the booking is returned together with the *domain.PersistenceError.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.CustomerID == "" || input.ItineraryID == "" {
		return nil, s.reject("create", fmt.Errorf("customer and itinerary are required: %w", domain.ErrMissingSelection))
	}

	var created domain.Booking
	var event kafka.BookingEvent
	err := s.ledger.Update(ctx, func(data *store.TravelData) error {
		customer, ok := data.Customer(input.CustomerID)
		if !ok {
			return fmt.Errorf("customer %s: %w", input.CustomerID, domain.ErrMissingSelection)
		}
		itinerary, ok := data.Itinerary(input.ItineraryID)
		if !ok {
			return fmt.Errorf("itinerary %s: %w", input.ItineraryID, domain.ErrMissingSelection)
		}
		if err := itinerary.ReserveSeat(); err != nil {
			return fmt.Errorf("itinerary %s: %w", itinerary.ID, err)
		}

		booking, err := domain.NewBooking(customer.ID, itinerary.ID, domain.DateOf(s.clock.Now()))
		if err != nil {
			return err
		}
		if err := data.ReplaceItinerary(itinerary); err != nil {
			return err
		}
		if err := data.AddBooking(booking); err != nil {
			return err
		}

		created = booking
		event = newEvent(kafka.EventBookingCreated, booking, customer, itinerary)
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, s.reject("create", err)
	}

	metrics.BookingsCreated.Inc()
	s.log.Info("booking created", "booking_id", created.ID, "customer_id", created.CustomerID, "itinerary_id", created.ItineraryID)
	s.afterCommit(ctx, event)
	return &created, err
}

// CancelBooking flags an active booking cancelled and gives its seat back.
// A booking whose itinerary was deleted meanwhile is cancelled without
// releasing a seat.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if id == "" {
		return nil, s.reject("cancel", fmt.Errorf("booking is required: %w", domain.ErrMissingSelection))
	}

	var cancelled domain.Booking
	var event kafka.BookingEvent
	err := s.ledger.Update(ctx, func(data *store.TravelData) error {
		booking, ok := data.Booking(id)
		if !ok {
			return fmt.Errorf("booking %s: %w", id, domain.ErrMissingSelection)
		}
		if err := booking.Cancel(); err != nil {
			return fmt.Errorf("booking %s: %w", id, err)
		}

		itinerary, hasItinerary := data.Itinerary(booking.ItineraryID)
		if hasItinerary {
			itinerary.ReleaseSeat()
			if err := data.ReplaceItinerary(itinerary); err != nil {
				return err
			}
		} else {
			s.log.Warn("cancelled booking has no itinerary, no seat released", "booking_id", id, "itinerary_id", booking.ItineraryID)
		}
		if err := data.ReplaceBooking(booking); err != nil {
			return err
		}

		customer, _ := data.Customer(booking.CustomerID)
		cancelled = booking
		event = newEvent(kafka.EventBookingCancelled, booking, customer, itinerary)
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, s.reject("cancel", err)
	}

	metrics.BookingsCancelled.Inc()
	s.log.Info("booking cancelled", "booking_id", cancelled.ID)
	s.afterCommit(ctx, event)
	return &cancelled, err
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	s.ledger.View(func(data *store.TravelData) {
		bookings = data.Bookings()
	})
	return bookings, nil
}

func (s *BookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var booking domain.Booking
	var ok bool
	s.ledger.View(func(data *store.TravelData) {
		booking, ok = data.Booking(id)
	})
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	return &booking, nil
}

func (s *BookingService) reject(operation string, err error) error {
	metrics.BookingsRejected.WithLabelValues(operation, Reason(err)).Inc()
	s.log.Info("booking "+operation+" rejected", "error", err)
	return err
}

func (s *BookingService) afterCommit(ctx context.Context, event kafka.BookingEvent) {
	if s.cache != nil {
		if err := s.cache.InvalidateItineraries(ctx); err != nil {
			s.log.Warn("invalidate itinerary cache", "error", err)
		}
	}
	if err := s.publish(ctx, event); err != nil {
		s.log.Warn("failed to publish booking event", "type", event.Type, "booking_id", event.BookingID, "error", err)
	}
}

func (s *BookingService) publish(ctx context.Context, event kafka.BookingEvent) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, event.BookingID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, event.BookingID, event)
	}
	return nil
}

// Reason maps a workflow error to a short label.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingSelection):
		return "missing_selection"
	case errors.Is(err, domain.ErrNoAvailability):
		return "no_availability"
	case errors.Is(err, domain.ErrAlreadyCancelled):
		return "already_cancelled"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "other"
	}
}

func newEvent(eventType string, b domain.Booking, c domain.Customer, it domain.Itinerary) kafka.BookingEvent {
	return kafka.BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		CustomerID:    b.CustomerID,
		CustomerName:  c.Name,
		CustomerEmail: c.Email,
		ItineraryID:   b.ItineraryID,
		Destination:   it.Destination,
		TravelDate:    it.Date.String(),
		BookingDate:   b.BookingDate.String(),
		Status:        string(b.Status()),
	}
}

var _ BookingUseCase = (*BookingService)(nil)
