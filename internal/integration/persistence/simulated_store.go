package persistence

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

var simulatedFailures = []string{
	"network error: unable to reach the server",
	"timeout: the server is not responding",
	"error 500: internal server error",
	"error 503: service temporarily unavailable",
}

// SimulationOptions configures the latency and failure injection.
type SimulationOptions struct {
	MinDelay  time.Duration
	MaxDelay  time.Duration
	ErrorRate float64
}

// SimulatedStore delays every call by a random duration and fails a fraction of them
// before they reach the wrapped store. It wraps both plain and legacy stores.
type SimulatedStore struct {
	next adapter.TransactionStore
	opts SimulationOptions
	rand func() float64
	wait func(ctx context.Context, d time.Duration) error
}

// NewSimulatedStore wraps next with the given simulation options.
func NewSimulatedStore(next adapter.TransactionStore, opts SimulationOptions) *SimulatedStore {
	if opts.MaxDelay < opts.MinDelay {
		opts.MaxDelay = opts.MinDelay
	}
	return &SimulatedStore{
		next: next,
		opts: opts,
		rand: rand.Float64,
		wait: sleep,
	}
}

func (s *SimulatedStore) Load(ctx context.Context) ([]entity.Transaction, error) {
	if err := s.simulate(ctx, "load"); err != nil {
		return nil, err
	}
	return s.next.Load(ctx)
}

func (s *SimulatedStore) Save(ctx context.Context, transactions []entity.Transaction) error {
	if err := s.simulate(ctx, "save"); err != nil {
		return err
	}
	return s.next.Save(ctx, transactions)
}

// Remove forwards to the wrapped store when it supports removal.
func (s *SimulatedStore) Remove(ctx context.Context) error {
	legacy, ok := s.next.(adapter.LegacyTransactionStore)
	if !ok {
		return errors.New("wrapped store does not support removal")
	}
	if err := s.simulate(ctx, "remove"); err != nil {
		return err
	}
	return legacy.Remove(ctx)
}

func (s *SimulatedStore) simulate(ctx context.Context, op string) error {
	delay := s.opts.MinDelay + time.Duration(s.rand()*float64(s.opts.MaxDelay-s.opts.MinDelay))
	if err := s.wait(ctx, delay); err != nil {
		return domainerror.NewStorageError(domainerror.ErrCodeStorageUnavailable, "request cancelled", err)
	}

	if s.opts.ErrorRate > 0 && s.rand() < s.opts.ErrorRate {
		message := simulatedFailures[int(s.rand()*float64(len(simulatedFailures)))%len(simulatedFailures)]
		slog.WarnContext(ctx, "Simulated storage failure", "operation", op, "message", message)
		return domainerror.NewStorageError(domainerror.ErrCodeStorageUnavailable, message, nil)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
