package store

import (
	"context"
	"errors"
	"sync"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/logger"
	"github.com/Domenick1991/travelbooking/internal/metrics"
)

// Persister loads and saves the whole aggregate at once.
type Persister interface {
	Load(ctx context.Context) (*TravelData, error)
	Save(ctx context.Context, data *TravelData) error
}

// Ledger owns the process-wide TravelData. Every read and mutation runs under one
// lock, and every successful mutation is followed by a full save.
type Ledger struct {
	mu        sync.Mutex
	data      *TravelData
	persister Persister
	log       *logger.Logger

	// loadFailed and mutated keep Flush from replacing stored data with the
	// empty store a failed load left behind.
	loadFailed bool
	mutated    bool
}

func NewLedger(data *TravelData, persister Persister, log *logger.Logger) *Ledger {
	if data == nil {
		data = New()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Ledger{data: data, persister: persister, log: log}
}

// Open loads the store once. When loading fails the returned Ledger is still
// usable and starts empty; the load error is returned alongside it.
func Open(ctx context.Context, persister Persister, log *logger.Logger) (*Ledger, error) {
	if persister == nil {
		return NewLedger(nil, nil, log), nil
	}
	data, err := persister.Load(ctx)
	if err != nil {
		l := NewLedger(nil, persister, log)
		l.loadFailed = true
		return l, err
	}
	return NewLedger(data, persister, log), nil
}

func (l *Ledger) View(fn func(data *TravelData)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.data)
}

// Update runs fn and saves the store if fn succeeds. fn must check everything
// before it mutates: an error from fn is returned as is and nothing is saved.
// A failed save is returned as *domain.PersistenceError with the mutation kept.
func (l *Ledger) Update(ctx context.Context, fn func(data *TravelData) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := fn(l.data); err != nil {
		return err
	}
	l.mutated = true
	return l.save(ctx)
}

// Flush saves the current state. After a failed Open it does nothing until
// an Update has changed the store.
func (l *Ledger) Flush(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loadFailed && !l.mutated {
		l.log.Warn("skip save, travel data was never loaded or changed")
		return nil
	}
	return l.save(ctx)
}

func (l *Ledger) save(ctx context.Context) error {
	if l.persister == nil {
		return nil
	}
	if err := l.persister.Save(ctx, l.data); err != nil {
		metrics.StoreFlushes.WithLabelValues("failed").Inc()
		l.log.Error("save travel data", "error", err)
		var perr *domain.PersistenceError
		if errors.As(err, &perr) {
			return err
		}
		return &domain.PersistenceError{Op: "save travel data", Err: err}
	}
	metrics.StoreFlushes.WithLabelValues("ok").Inc()
	return nil
}
