package repository

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/logger"
	"github.com/Domenick1991/travelbooking/internal/store"
)

const DefaultDataFile = "travel_data.xml"

type xmlTravelData struct {
	XMLName     xml.Name       `xml:"travelData"`
	Customers   []xmlCustomer  `xml:"customer"`
	Itineraries []xmlItinerary `xml:"itinerary"`
	Bookings    []xmlBooking   `xml:"booking"`
}

type xmlCustomer struct {
	ID    string `xml:"id,attr"`
	Name  string `xml:"name"`
	Email string `xml:"email"`
	Phone string `xml:"phone"`
}

type xmlItinerary struct {
	ID             string       `xml:"id,attr"`
	Destination    string       `xml:"destination"`
	Date           domain.Date  `xml:"date"`
	AvailableSeats int          `xml:"availableSeats"`
	Cost           domain.Money `xml:"cost"`
	TransportType  string       `xml:"transportType"`
}

type xmlBooking struct {
	ID          string      `xml:"id,attr"`
	CustomerID  string      `xml:"customerId"`
	ItineraryID string      `xml:"itineraryId"`
	BookingDate domain.Date `xml:"bookingDate"`
	Cancelled   bool        `xml:"cancelled"`
}

// XMLFileStore keeps the whole aggregate in one XML document on disk.
type XMLFileStore struct {
	path string
	log  *logger.Logger
}

func NewXMLFileStore(path string, log *logger.Logger) *XMLFileStore {
	if path == "" {
		path = DefaultDataFile
	}
	if log == nil {
		log = logger.Nop()
	}
	return &XMLFileStore{path: path, log: log}
}

func (s *XMLFileStore) Path() string {
	return s.path
}

// Load returns an empty store when the file does not exist yet.
func (s *XMLFileStore) Load(ctx context.Context) (*store.TravelData, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("data file not found, starting empty", "path", s.path)
		return store.New(), nil
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "read " + s.path, Err: err}
	}

	var doc xmlTravelData
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, &domain.PersistenceError{Op: "decode " + s.path, Err: err}
	}
	data, err := store.FromSnapshot(fromXML(doc))
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load " + s.path, Err: err}
	}

	s.log.Info("travel data loaded", "path", s.path,
		"customers", len(doc.Customers), "itineraries", len(doc.Itineraries), "bookings", len(doc.Bookings))
	return data, nil
}

// Save rewrites the whole document. The new content goes to a temporary file
// in the same directory first and is renamed over the old one.
func (s *XMLFileStore) Save(ctx context.Context, data *store.TravelData) error {
	body, err := xml.MarshalIndent(toXML(data.Snapshot()), "", "    ")
	if err != nil {
		return &domain.PersistenceError{Op: "encode travel data", Err: err}
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')

	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return &domain.PersistenceError{Op: "write " + s.path, Err: err}
	}
	s.log.Debug("travel data saved", "path", s.path)
	return nil
}

func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func toXML(s store.Snapshot) xmlTravelData {
	doc := xmlTravelData{
		Customers:   make([]xmlCustomer, 0, len(s.Customers)),
		Itineraries: make([]xmlItinerary, 0, len(s.Itineraries)),
		Bookings:    make([]xmlBooking, 0, len(s.Bookings)),
	}
	for _, c := range s.Customers {
		doc.Customers = append(doc.Customers, xmlCustomer(c))
	}
	for _, it := range s.Itineraries {
		doc.Itineraries = append(doc.Itineraries, xmlItinerary(it))
	}
	for _, b := range s.Bookings {
		doc.Bookings = append(doc.Bookings, xmlBooking(b))
	}
	return doc
}

func fromXML(doc xmlTravelData) store.Snapshot {
	s := store.Snapshot{
		Customers:   make([]domain.Customer, 0, len(doc.Customers)),
		Itineraries: make([]domain.Itinerary, 0, len(doc.Itineraries)),
		Bookings:    make([]domain.Booking, 0, len(doc.Bookings)),
	}
	for _, c := range doc.Customers {
		s.Customers = append(s.Customers, domain.Customer(c))
	}
	for _, it := range doc.Itineraries {
		s.Itineraries = append(s.Itineraries, domain.Itinerary(it))
	}
	for _, b := range doc.Bookings {
		s.Bookings = append(s.Bookings, domain.Booking(b))
	}
	return s
}

var _ store.Persister = (*XMLFileStore)(nil)
