package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

// keyValueStore serializes the whole collection as a JSON array under one key.
type keyValueStore struct {
	kv  KeyValue
	key string
	// strict reports undecodable content instead of dropping it.
	strict bool
}

// NewKeyValueStore creates a transaction store over a key-value backend.
func NewKeyValueStore(kv KeyValue, key string) adapter.TransactionStore {
	return &keyValueStore{
		kv:  kv,
		key: key,
	}
}

// NewLegacyKeyValueStore creates the store read by the startup migration. Content
// that cannot be decoded is reported as ErrCorruptData so it is never removed.
func NewLegacyKeyValueStore(kv KeyValue, key string) adapter.LegacyTransactionStore {
	return &keyValueStore{
		kv:     kv,
		key:    key,
		strict: true,
	}
}

// Load returns an empty collection when the key is absent. Records that cannot be
// decoded are skipped, unless the store is strict.
func (s *keyValueStore) Load(ctx context.Context) ([]entity.Transaction, error) {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrKeyNotFound) {
		return []entity.Transaction{}, nil
	}
	if err != nil {
		return nil, domainerror.NewStorageError(
			domainerror.ErrCodeStorageUnavailable,
			"failed to load transactions",
			err,
		)
	}

	transactions, err := decodeCollection(data)
	if err != nil {
		if s.strict {
			return nil, domainerror.NewCorruptDataError("stored transactions could not be decoded", err)
		}
		slog.WarnContext(ctx, "Skipped undecodable stored transactions",
			"key", s.key,
			"kept", len(transactions),
			"error", err,
		)
	}
	if transactions == nil {
		transactions = []entity.Transaction{}
	}
	return transactions, nil
}

func (s *keyValueStore) Save(ctx context.Context, transactions []entity.Transaction) error {
	if transactions == nil {
		transactions = []entity.Transaction{}
	}

	data, err := json.Marshal(transactions)
	if err != nil {
		return domainerror.NewStorageError(
			domainerror.ErrCodeStorageWriteFailed,
			"failed to serialize transactions",
			err,
		)
	}

	if err := s.kv.Set(ctx, s.key, data); err != nil {
		message := "failed to save transactions"
		if errors.Is(err, ErrQuotaExceeded) {
			message = "storage quota exceeded"
		}
		return domainerror.NewStorageError(domainerror.ErrCodeStorageWriteFailed, message, err)
	}
	return nil
}

func (s *keyValueStore) Remove(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return domainerror.NewStorageError(
			domainerror.ErrCodeStorageWriteFailed,
			"failed to remove transactions",
			err,
		)
	}
	return nil
}
