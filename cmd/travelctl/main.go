package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/logger"
	"github.com/Domenick1991/travelbooking/internal/repository"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/Domenick1991/travelbooking/internal/service/customers"
	"github.com/Domenick1991/travelbooking/internal/service/itineraries"
	"github.com/Domenick1991/travelbooking/internal/service/reports"
	"github.com/Domenick1991/travelbooking/internal/store"
	"github.com/urfave/cli/v2"
)

type services struct {
	customers   *customers.CustomerService
	itineraries *itineraries.ItineraryService
	bookings    *booking.BookingService
	reports     *reports.ReportService
}

func openServices(ctx context.Context, path string, lg *logger.Logger) (*services, error) {
	ledger, err := store.Open(ctx, repository.NewXMLFileStore(path, lg), lg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &services{
		customers:   customers.NewCustomerService(ledger, lg),
		itineraries: itineraries.NewItineraryService(ledger, nil, lg),
		bookings:    booking.NewBookingService(ledger, booking.WithLogger(lg)),
		reports:     reports.NewReportService(ledger),
	}, nil
}

// withServices opens the data file for one command.
func withServices(fn func(c *cli.Context, s *services) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		lg := logger.Nop()
		if c.Bool("verbose") {
			var err error
			if lg, err = logger.New("dev"); err != nil {
				return err
			}
			defer lg.Sync()
		}
		s, err := openServices(c.Context, c.String("data"), lg)
		if err != nil {
			return err
		}
		return fn(c, s)
	}
}

func requireArgs(c *cli.Context, n int) error {
	if c.NArg() < n {
		return fmt.Errorf("expected %d argument(s): %s", n, c.Command.ArgsUsage)
	}
	return nil
}

// keepOnPersistence lets a command report what it changed in memory before
// returning the save failure.
func keepOnPersistence(err error) bool {
	return err == nil || errors.Is(err, domain.ErrPersistence)
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "travelctl",
		Usage:     "Manage customers, itineraries and bookings in a travel data file",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Value:   repository.DefaultDataFile,
				EnvVars: []string{"TRAVEL_DATA"},
				Usage:   "path of the XML data file",
			},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log to stderr"},
		},
		Commands: []*cli.Command{
			customersCommand(),
			itinerariesCommand(),
			bookingsCommand(),
			{
				Name:      "report",
				Usage:     "print the booking history of a customer",
				ArgsUsage: "<customer-id>",
				Action: withServices(func(c *cli.Context, s *services) error {
					history, err := s.reports.CustomerHistory(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, s.reports.Render(c.Context, history))
					return nil
				}),
			},
		},
	}
}

func customersCommand() *cli.Command {
	return &cli.Command{
		Name:  "customers",
		Usage: "list and add customers",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list customers",
				Action: withServices(func(c *cli.Context, s *services) error {
					list, err := s.customers.List(c.Context)
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
					for _, cu := range list {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cu.ID, cu.Name, cu.Email, cu.Phone)
					}
					return w.Flush()
				}),
			},
			{
				Name:      "add",
				Usage:     "add a customer",
				ArgsUsage: "<name> <email> <phone>",
				Action: withServices(func(c *cli.Context, s *services) error {
					if err := requireArgs(c, 3); err != nil {
						return err
					}
					created, err := s.customers.Create(c.Context, customers.CustomerInput{
						Name:  c.Args().Get(0),
						Email: c.Args().Get(1),
						Phone: c.Args().Get(2),
					})
					if keepOnPersistence(err) && created != nil {
						fmt.Fprintln(c.App.Writer, created.ID)
					}
					return err
				}),
			},
		},
	}
}

func itinerariesCommand() *cli.Command {
	return &cli.Command{
		Name:  "itineraries",
		Usage: "list and add itineraries",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list itineraries",
				Action: withServices(func(c *cli.Context, s *services) error {
					list, err := s.itineraries.List(c.Context)
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tDESTINATION\tDATE\tSEATS\tCOST\tTRANSPORT")
					for _, it := range list {
						fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", it.ID, it.Destination, it.Date, it.AvailableSeats, it.Cost, it.TransportType)
					}
					return w.Flush()
				}),
			},
			{
				Name:      "add",
				Usage:     "add an itinerary",
				ArgsUsage: "<destination> <YYYY-MM-DD>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "seats", Value: 1, Usage: "available seats"},
					&cli.StringFlag{Name: "cost", Value: "0", Usage: "cost, e.g. 129.90"},
					&cli.StringFlag{Name: "transport", Value: domain.TransportTypes[0], Usage: "plane, train or bus"},
				},
				Action: withServices(func(c *cli.Context, s *services) error {
					if err := requireArgs(c, 2); err != nil {
						return err
					}
					created, err := s.itineraries.Create(c.Context, itineraries.ItineraryInput{
						Destination:    c.Args().Get(0),
						Date:           c.Args().Get(1),
						AvailableSeats: c.Int("seats"),
						Cost:           c.String("cost"),
						TransportType:  c.String("transport"),
					})
					if keepOnPersistence(err) && created != nil {
						fmt.Fprintln(c.App.Writer, created.ID)
					}
					return err
				}),
			},
		},
	}
}

func bookingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "bookings",
		Usage: "list, create and cancel bookings",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list bookings",
				Action: withServices(func(c *cli.Context, s *services) error {
					list, err := s.bookings.List(c.Context)
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tCUSTOMER\tITINERARY\tDATE\tSTATUS")
					for _, b := range list {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", b.ID, b.CustomerID, b.ItineraryID, b.BookingDate, b.Status())
					}
					return w.Flush()
				}),
			},
			{
				Name:      "create",
				Usage:     "book one seat",
				ArgsUsage: "<customer-id> <itinerary-id>",
				Action: withServices(func(c *cli.Context, s *services) error {
					b, err := s.bookings.CreateBooking(c.Context, booking.CreateBookingInput{
						CustomerID:  c.Args().Get(0),
						ItineraryID: c.Args().Get(1),
					})
					if keepOnPersistence(err) && b != nil {
						fmt.Fprintln(c.App.Writer, b.ID)
					}
					return err
				}),
			},
			{
				Name:      "cancel",
				Usage:     "cancel a booking",
				ArgsUsage: "<booking-id>",
				Action: withServices(func(c *cli.Context, s *services) error {
					b, err := s.bookings.CancelBooking(c.Context, c.Args().First())
					if keepOnPersistence(err) && b != nil {
						fmt.Fprintf(c.App.Writer, "%s %s\n", b.ID, b.Status())
					}
					return err
				}),
			},
		},
	}
}

// exitError maps a command failure to a process exit status.
func exitError(err error) cli.ExitCoder {
	code := 1
	switch {
	case errors.Is(err, domain.ErrPersistence):
		code = 4
	case errors.Is(err, domain.ErrNoAvailability), errors.Is(err, domain.ErrAlreadyCancelled):
		code = 3
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrMissingSelection), errors.Is(err, domain.ErrNotFound):
		code = 2
	}
	return cli.Exit("travelctl: "+err.Error(), code)
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		cli.HandleExitCoder(exitError(err))
	}
}
