package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/store"
	"github.com/samber/lo"
)

// EmptyHistory is rendered for a customer without bookings.
const EmptyHistory = "No bookings for this customer."

type ReportUseCase interface {
	CustomerHistory(ctx context.Context, customerID string) ([]domain.Booking, error)
	Entries(ctx context.Context, history []domain.Booking) []Entry
	Render(ctx context.Context, history []domain.Booking) string
}

// Entry is one report line with its references resolved. Deleted customers
// and itineraries resolve to their IDs.
type Entry struct {
	BookingID   string `json:"booking_id"`
	Customer    string `json:"customer"`
	Destination string `json:"destination"`
	BookingDate string `json:"booking_date"`
	Cancelled   bool   `json:"cancelled"`
}

func (e Entry) String() string {
	line := fmt.Sprintf("%s -> %s (%s)", e.Customer, e.Destination, e.BookingDate)
	if e.Cancelled {
		line += " (cancelled)"
	}
	return line
}

type ReportService struct {
	ledger *store.Ledger
}

func NewReportService(ledger *store.Ledger) *ReportService {
	return &ReportService{ledger: ledger}
}

// CustomerHistory returns the customer's bookings in insertion order. The
// customer does not have to exist any more.
func (s *ReportService) CustomerHistory(ctx context.Context, customerID string) ([]domain.Booking, error) {
	if customerID == "" {
		return nil, fmt.Errorf("customer is required: %w", domain.ErrMissingSelection)
	}
	var history []domain.Booking
	s.ledger.View(func(data *store.TravelData) {
		history = lo.Filter(data.Bookings(), func(b domain.Booking, _ int) bool {
			return b.CustomerID == customerID
		})
	})
	return history, nil
}

func (s *ReportService) Entries(ctx context.Context, history []domain.Booking) []Entry {
	entries := make([]Entry, 0, len(history))
	s.ledger.View(func(data *store.TravelData) {
		for _, b := range history {
			entry := Entry{
				BookingID:   b.ID,
				Customer:    b.CustomerID,
				Destination: b.ItineraryID,
				BookingDate: b.BookingDate.String(),
				Cancelled:   b.Cancelled,
			}
			if c, ok := data.Customer(b.CustomerID); ok {
				entry.Customer = c.Name
			}
			if it, ok := data.Itinerary(b.ItineraryID); ok {
				entry.Destination = it.Destination
			}
			entries = append(entries, entry)
		}
	})
	return entries
}

// Render returns one line per booking, or EmptyHistory.
func (s *ReportService) Render(ctx context.Context, history []domain.Booking) string {
	if len(history) == 0 {
		return EmptyHistory
	}
	lines := lo.Map(s.Entries(ctx, history), func(e Entry, _ int) string {
		return e.String()
	})
	return strings.Join(lines, "\n")
}

var _ ReportUseCase = (*ReportService)(nil)
