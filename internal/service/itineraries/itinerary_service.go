package itineraries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/logger"
	"github.com/Domenick1991/travelbooking/internal/store"
)

type ItineraryUseCase interface {
	List(ctx context.Context) ([]domain.Itinerary, error)
	Get(ctx context.Context, id string) (*domain.Itinerary, error)
	Create(ctx context.Context, input ItineraryInput) (*domain.Itinerary, error)
	Update(ctx context.Context, id string, input ItineraryInput) (*domain.Itinerary, error)
	Delete(ctx context.Context, id string) error
}

// ItineraryCache holds the full itinerary list. A nil slice from
// GetItineraries means a miss.
type ItineraryCache interface {
	GetItineraries(ctx context.Context) ([]domain.Itinerary, error)
	SetItineraries(ctx context.Context, itineraries []domain.Itinerary) error
	InvalidateItineraries(ctx context.Context) error
}

// ItineraryInput is the form representation: date as YYYY-MM-DD and cost as
// a decimal string.
type ItineraryInput struct {
	Destination    string `json:"destination"`
	Date           string `json:"date"`
	AvailableSeats int    `json:"available_seats"`
	Cost           string `json:"cost"`
	TransportType  string `json:"transport_type"`
}

type itineraryFields struct {
	destination   string
	date          domain.Date
	seats         int
	cost          domain.Money
	transportType string
}

func (in ItineraryInput) parse() (itineraryFields, error) {
	f := itineraryFields{
		destination:   strings.TrimSpace(in.Destination),
		seats:         in.AvailableSeats,
		transportType: strings.TrimSpace(in.TransportType),
	}
	if f.destination == "" {
		return f, &domain.FieldError{Field: "destination", Reason: "must not be empty"}
	}
	date, err := domain.ParseDate(strings.TrimSpace(in.Date))
	if err != nil || date.IsZero() {
		return f, &domain.FieldError{Field: "date", Reason: "expected " + domain.DateLayout}
	}
	f.date = date
	if f.seats <= 0 {
		return f, &domain.FieldError{Field: "available_seats", Reason: "must be positive"}
	}
	cost, err := domain.ParseMoney(in.Cost)
	if err != nil {
		return f, &domain.FieldError{Field: "cost", Reason: "expected a decimal amount"}
	}
	if cost < 0 {
		return f, &domain.FieldError{Field: "cost", Reason: "must not be negative"}
	}
	f.cost = cost
	if f.transportType == "" {
		return f, &domain.FieldError{Field: "transport_type", Reason: "must not be empty"}
	}
	return f, nil
}

type ItineraryService struct {
	ledger *store.Ledger
	cache  ItineraryCache
	log    *logger.Logger
}

func NewItineraryService(ledger *store.Ledger, cache ItineraryCache, log *logger.Logger) *ItineraryService {
	if log == nil {
		log = logger.Nop()
	}
	return &ItineraryService{ledger: ledger, cache: cache, log: log}
}

func (s *ItineraryService) List(ctx context.Context) ([]domain.Itinerary, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetItineraries(ctx); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.log.Warn("read itinerary cache", "error", err)
		}
	}

	// The fill runs under the ledger lock so that a mutation committing
	// meanwhile invalidates after it, never before it.
	var itineraries []domain.Itinerary
	s.ledger.View(func(data *store.TravelData) {
		itineraries = data.Itineraries()
		if s.cache != nil {
			if err := s.cache.SetItineraries(ctx, itineraries); err != nil {
				s.log.Warn("fill itinerary cache", "error", err)
			}
		}
	})
	return itineraries, nil
}

func (s *ItineraryService) Get(ctx context.Context, id string) (*domain.Itinerary, error) {
	var itinerary domain.Itinerary
	var ok bool
	s.ledger.View(func(data *store.TravelData) {
		itinerary, ok = data.Itinerary(id)
	})
	if !ok {
		return nil, fmt.Errorf("itinerary %s: %w", id, domain.ErrNotFound)
	}
	return &itinerary, nil
}

func (s *ItineraryService) Create(ctx context.Context, input ItineraryInput) (*domain.Itinerary, error) {
	f, err := input.parse()
	if err != nil {
		return nil, err
	}
	itinerary, err := domain.NewItinerary(f.destination, f.date, f.seats, f.cost, f.transportType)
	if err != nil {
		return nil, err
	}

	err = s.ledger.Update(ctx, func(data *store.TravelData) error {
		return data.AddItinerary(itinerary)
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info("itinerary created", "itinerary_id", itinerary.ID, "destination", itinerary.Destination)
	return &itinerary, err
}

func (s *ItineraryService) Update(ctx context.Context, id string, input ItineraryInput) (*domain.Itinerary, error) {
	f, err := input.parse()
	if err != nil {
		return nil, err
	}

	var updated domain.Itinerary
	err = s.ledger.Update(ctx, func(data *store.TravelData) error {
		itinerary, ok := data.Itinerary(id)
		if !ok {
			return fmt.Errorf("itinerary %s: %w", id, domain.ErrNotFound)
		}
		itinerary.Destination = f.destination
		itinerary.Date = f.date
		itinerary.AvailableSeats = f.seats
		itinerary.Cost = f.cost
		itinerary.TransportType = f.transportType
		if err := data.ReplaceItinerary(itinerary); err != nil {
			return err
		}
		updated = itinerary
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info("itinerary updated", "itinerary_id", id)
	return &updated, err
}

// Delete removes the itinerary only. Bookings that reference it are kept.
func (s *ItineraryService) Delete(ctx context.Context, id string) error {
	err := s.ledger.Update(ctx, func(data *store.TravelData) error {
		itinerary, ok := data.Itinerary(id)
		if !ok {
			return fmt.Errorf("itinerary %s: %w", id, domain.ErrNotFound)
		}
		data.RemoveItinerary(itinerary)
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return err
	}
	s.invalidate(ctx)
	s.log.Info("itinerary deleted", "itinerary_id", id)
	return err
}

func (s *ItineraryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateItineraries(ctx); err != nil {
		s.log.Warn("invalidate itinerary cache", "error", err)
	}
}

var _ ItineraryUseCase = (*ItineraryService)(nil)
