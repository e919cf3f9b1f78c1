// Package entity defines the core business entities for the domain layer.
package entity

import "time"

const (
	// ExportVersion is the current version of the export envelope.
	ExportVersion = 1
	// AppIdentifier tags export files produced by this system.
	AppIdentifier = "zFinance"
)

// ExportEnvelope wraps a complete snapshot of the transaction collection.
type ExportEnvelope struct {
	Version      int           `json:"version"`
	ExportedAt   time.Time     `json:"exportedAt"`
	App          string        `json:"app"`
	Count        int           `json:"count"`
	Transactions []Transaction `json:"transactions"`
}

// NewExportEnvelope builds an envelope around the given transactions.
func NewExportEnvelope(transactions []Transaction, exportedAt time.Time) *ExportEnvelope {
	if transactions == nil {
		transactions = []Transaction{}
	}
	return &ExportEnvelope{
		Version:      ExportVersion,
		ExportedAt:   exportedAt.UTC(),
		App:          AppIdentifier,
		Count:        len(transactions),
		Transactions: transactions,
	}
}

// ImportMode selects how imported transactions are applied to the store.
type ImportMode string

const (
	ImportModeReplace ImportMode = "replace"
	ImportModeMerge   ImportMode = "merge"
)
