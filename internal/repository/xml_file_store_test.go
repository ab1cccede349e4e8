package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData(t *testing.T) *store.TravelData {
	t.Helper()
	data := store.New()

	alice, err := domain.NewCustomer("Alice", "alice@example.com", "555-0100")
	require.NoError(t, err)
	bob, err := domain.NewCustomer("Bob", "", "")
	require.NoError(t, err)
	paris, err := domain.NewItinerary("Paris", domain.NewDate(2025, time.September, 14), 3, 25050, "plane")
	require.NoError(t, err)
	rome, err := domain.NewItinerary("Rome", domain.NewDate(2025, time.October, 1), 0, 0, "train")
	require.NoError(t, err)

	require.NoError(t, data.AddCustomer(alice))
	require.NoError(t, data.AddCustomer(bob))
	require.NoError(t, data.AddItinerary(paris))
	require.NoError(t, data.AddItinerary(rome))

	b1, err := domain.NewBooking(alice.ID, paris.ID, domain.NewDate(2025, time.August, 1))
	require.NoError(t, err)
	b2, err := domain.NewBooking(bob.ID, rome.ID, domain.NewDate(2025, time.August, 2))
	require.NoError(t, err)
	require.NoError(t, b2.Cancel())
	require.NoError(t, data.AddBooking(b1))
	require.NoError(t, data.AddBooking(b2))
	return data
}

func TestXMLFileStore_LoadMissingFileReturnsEmpty(t *testing.T) {
	s := NewXMLFileStore(filepath.Join(t.TempDir(), "missing.xml"), nil)

	data, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, data.Customers())
	assert.Empty(t, data.Itineraries())
	assert.Empty(t, data.Bookings())
}

func TestXMLFileStore_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "travel_data.xml")
	s := NewXMLFileStore(path, nil)
	data := sampleData(t)

	require.NoError(t, s.Save(ctx, data))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, data.Snapshot(), loaded.Snapshot())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<date>2025-09-14</date>")
	assert.Contains(t, string(raw), "<cost>250.50</cost>")
	assert.Contains(t, string(raw), "<cancelled>true</cancelled>")
}

func TestXMLFileStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewXMLFileStore(filepath.Join(t.TempDir(), "travel_data.xml"), nil)

	require.NoError(t, s.Save(ctx, sampleData(t)))
	require.NoError(t, s.Save(ctx, store.New()))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Customers())
}

func TestXMLFileStore_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "travel_data.xml")
	require.NoError(t, os.WriteFile(path, []byte("<travelData><customer>"), 0o644))

	_, err := NewXMLFileStore(path, nil).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestXMLFileStore_LoadInvalidEntity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "travel_data.xml")
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<travelData>
    <itinerary id="i1">
        <destination>Oslo</destination>
        <date>2025-01-01</date>
        <availableSeats>-2</availableSeats>
        <cost>10.00</cost>
        <transportType>plane</transportType>
    </itinerary>
</travelData>`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := NewXMLFileStore(path, nil).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestXMLFileStore_SaveToMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "travel_data.xml")

	err := NewXMLFileStore(path, nil).Save(context.Background(), sampleData(t))
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
