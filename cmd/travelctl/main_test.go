package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, data string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"travelctl", "--data", data}, args...))
	return strings.TrimSpace(out.String()), err
}

func TestTravelctl_BookingFlow(t *testing.T) {
	data := filepath.Join(t.TempDir(), "travel.xml")

	customerID, err := run(t, data, "customers", "add", "Eleni", "eleni@example.com", "6900000000")
	require.NoError(t, err)
	require.NotEmpty(t, customerID)

	itineraryID, err := run(t, data, "itineraries", "add", "--seats", "1", "--cost", "99.50", "Santorini", "2025-08-15")
	require.NoError(t, err)
	require.NotEmpty(t, itineraryID)

	bookingID, err := run(t, data, "bookings", "create", customerID, itineraryID)
	require.NoError(t, err)
	require.NotEmpty(t, bookingID)

	_, err = run(t, data, "bookings", "create", customerID, itineraryID)
	assert.ErrorIs(t, err, domain.ErrNoAvailability)

	listing, err := run(t, data, "itineraries", "list")
	require.NoError(t, err)
	assert.Contains(t, listing, "Santorini")
	assert.Contains(t, listing, "99.50")

	out, err := run(t, data, "bookings", "cancel", bookingID)
	require.NoError(t, err)
	assert.Equal(t, bookingID+" CANCELLED", out)

	_, err = run(t, data, "bookings", "cancel", bookingID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)

	report, err := run(t, data, "report", customerID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report, "Eleni -> Santorini ("), report)
	assert.True(t, strings.HasSuffix(report, "(cancelled)"), report)
}

func TestTravelctl_ReportWithoutBookings(t *testing.T) {
	data := filepath.Join(t.TempDir(), "travel.xml")

	customerID, err := run(t, data, "customers", "add", "Nikos", "nikos@example.com", "2100000000")
	require.NoError(t, err)

	report, err := run(t, data, "report", customerID)
	require.NoError(t, err)
	assert.Equal(t, "No bookings for this customer.", report)
}

func TestTravelctl_Validation(t *testing.T) {
	data := filepath.Join(t.TempDir(), "travel.xml")

	_, err := run(t, data, "customers", "add", "Nikos")
	assert.Error(t, err)

	_, err = run(t, data, "itineraries", "add", "--seats", "0", "Corfu", "2025-09-01")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = run(t, data, "bookings", "create")
	assert.ErrorIs(t, err, domain.ErrMissingSelection)
}

func TestExitError(t *testing.T) {
	testCases := []struct {
		err  error
		code int
	}{
		{err: fmt.Errorf("customer x: %w", domain.ErrMissingSelection), code: 2},
		{err: &domain.FieldError{Field: "cost"}, code: 2},
		{err: domain.ErrNoAvailability, code: 3},
		{err: domain.ErrAlreadyCancelled, code: 3},
		{err: &domain.PersistenceError{Op: "save", Err: errors.New("eio")}, code: 4},
		{err: errors.New("expected 3 argument(s)"), code: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			exit := exitError(tc.err)
			assert.Equal(t, tc.code, exit.ExitCode())
			assert.Equal(t, "travelctl: "+tc.err.Error(), exit.Error())
		})
	}
}
