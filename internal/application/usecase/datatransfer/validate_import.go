// Package datatransfer contains the export, import validation and import use cases.
package datatransfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/zfinance/internal/application/usecase/transaction"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

const (
	// MaxImportSize is the largest payload accepted for validation, in bytes.
	MaxImportSize = 10 * 1024 * 1024
	// MaxReportedErrors bounds the number of per-transaction messages returned.
	MaxReportedErrors = 10
)

const (
	msgTooLarge       = "file too large (max 10 MB)"
	msgInvalidJSON    = "invalid JSON format"
	msgInvalidShape   = "invalid data structure"
	msgNoTransactions = "no transactions found in file"
	msgForeignApp     = "this file was not exported by zFinance"
)

type jsonKind string

const (
	kindString jsonKind = "string"
	kindNumber jsonKind = "number"
)

// schemaField lists every required field in the order problems are reported.
type schemaField struct {
	name string
	kind jsonKind
}

var transactionSchema = []schemaField{
	{"id", kindString},
	{"amount", kindNumber},
	{"description", kindString},
	{"category", kindString},
	{"date", kindString},
	{"status", kindString},
	{"type", kindString},
	{"createdAt", kindString},
	{"updatedAt", kindString},
}

var dateFormatPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ImportStats counts the records of a validated payload.
type ImportStats struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

// ImportPayload is the sanitized content of a valid import file.
type ImportPayload struct {
	Version      int                  `json:"version,omitempty"`
	App          string               `json:"app,omitempty"`
	Transactions []entity.Transaction `json:"transactions"`
}

// ValidationResult is the outcome of ValidateImport. Data is set only when Valid is true.
type ValidationResult struct {
	Valid    bool           `json:"valid"`
	Errors   []string       `json:"errors"`
	Warnings []string       `json:"warnings"`
	Data     *ImportPayload `json:"data"`
	Stats    *ImportStats   `json:"stats,omitempty"`
}

func rejected(message string) *ValidationResult {
	return &ValidationResult{
		Errors:   []string{message},
		Warnings: []string{},
	}
}

// ValidateImport checks a raw import file against the export schema. Problems are
// reported as messages, never as a Go error. The batch is all-or-nothing: a single
// invalid record leaves Data nil.
func ValidateImport(raw []byte) *ValidationResult {
	if len(raw) > MaxImportSize {
		return rejected(msgTooLarge)
	}

	if !json.Valid(raw) {
		return rejected(msgInvalidJSON)
	}

	var envelope map[string]json.RawMessage
	if !isObject(raw) || json.Unmarshal(raw, &envelope) != nil {
		return rejected(msgInvalidShape)
	}

	warnings := []string{}
	var app string
	if err := json.Unmarshal(envelope["app"], &app); err != nil || app != entity.AppIdentifier {
		warnings = append(warnings, msgForeignApp)
	}

	var records []json.RawMessage
	if !isArray(envelope["transactions"]) || json.Unmarshal(envelope["transactions"], &records) != nil {
		return &ValidationResult{Errors: []string{msgNoTransactions}, Warnings: warnings}
	}

	var problems []string
	validated := make([]entity.Transaction, 0, len(records))
	seen := make(map[string]int, len(records))
	for i, record := range records {
		t, errs := validateRecord(record, i+1)
		if len(errs) > 0 {
			problems = append(problems, errs...)
			continue
		}
		if first, ok := seen[t.ID]; ok {
			problems = append(problems, fmt.Sprintf("Transaction %d: duplicate id (same as transaction %d)", i+1, first))
			continue
		}
		seen[t.ID] = i + 1
		validated = append(validated, t)
	}

	result := &ValidationResult{
		Valid:    len(problems) == 0,
		Errors:   capErrors(problems),
		Warnings: warnings,
		Stats: &ImportStats{
			Total:   len(records),
			Valid:   len(validated),
			Invalid: len(records) - len(validated),
		},
	}

	if result.Valid {
		var version int
		_ = json.Unmarshal(envelope["version"], &version)
		result.Data = &ImportPayload{
			Version:      version,
			App:          app,
			Transactions: validated,
		}
	}

	return result
}

func capErrors(problems []string) []string {
	if len(problems) <= MaxReportedErrors {
		if problems == nil {
			return []string{}
		}
		return problems
	}
	capped := make([]string, 0, MaxReportedErrors+1)
	capped = append(capped, problems[:MaxReportedErrors]...)
	return append(capped, fmt.Sprintf("... and %d more errors", len(problems)-MaxReportedErrors))
}

// validateRecord checks presence and JSON types first; value checks run only when
// every field has the right type.
func validateRecord(raw json.RawMessage, n int) (entity.Transaction, []string) {
	var fields map[string]json.RawMessage
	if !isObject(raw) || json.Unmarshal(raw, &fields) != nil {
		return entity.Transaction{}, []string{fmt.Sprintf("Transaction %d: invalid format", n)}
	}

	var errs []string
	for _, f := range transactionSchema {
		value, ok := fields[f.name]
		if !ok {
			errs = append(errs, fmt.Sprintf("Transaction %d: missing field %q", n, f.name))
			continue
		}
		if kindOf(value) != f.kind {
			errs = append(errs, fmt.Sprintf("Transaction %d: %q must be of type %s", n, f.name, f.kind))
		}
	}
	if len(errs) > 0 {
		return entity.Transaction{}, errs
	}

	str := func(name string) string {
		var s string
		_ = json.Unmarshal(fields[name], &s)
		return s
	}

	var t entity.Transaction
	var err error

	dateValue := str("date")
	if !dateFormatPattern.MatchString(dateValue) {
		errs = append(errs, fmt.Sprintf("Transaction %d: invalid date (expected format: YYYY-MM-DD)", n))
	} else if t.Date, err = entity.ParseDate(dateValue); err != nil {
		errs = append(errs, fmt.Sprintf("Transaction %d: invalid date (expected format: YYYY-MM-DD)", n))
	}

	if t.CreatedAt, err = entity.ParseTimestamp(str("createdAt")); err != nil {
		errs = append(errs, fmt.Sprintf("Transaction %d: invalid createdAt", n))
	}
	if t.UpdatedAt, err = entity.ParseTimestamp(str("updatedAt")); err != nil {
		errs = append(errs, fmt.Sprintf("Transaction %d: invalid updatedAt", n))
	}

	t.Status = entity.TransactionStatus(str("status"))
	if !t.Status.IsValid() {
		errs = append(errs, fmt.Sprintf("Transaction %d: invalid status", n))
	}

	t.Type = entity.TransactionType(str("type"))
	if !t.Type.IsValid() {
		errs = append(errs, fmt.Sprintf("Transaction %d: invalid type", n))
	}

	if t.Amount, err = parseAmount(fields["amount"]); err != nil {
		errs = append(errs, fmt.Sprintf("Transaction %d: invalid amount", n))
	}

	id := strings.TrimSpace(str("id"))
	if id == "" {
		errs = append(errs, fmt.Sprintf("Transaction %d: invalid id", n))
	}

	if len(errs) > 0 {
		return entity.Transaction{}, errs
	}

	t.ID = truncateRunes(id, transaction.MaxIDLength)
	t.Description = transaction.SanitizeText(str("description"), transaction.MaxDescriptionLength)
	t.Category = transaction.SanitizeText(str("category"), transaction.MaxCategoryLength)

	return t, nil
}

func truncateRunes(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// parseAmount rejects numbers that overflow a float64.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	text := string(bytes.TrimSpace(raw))
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(text)
}

func kindOf(raw json.RawMessage) jsonKind {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	switch c := trimmed[0]; {
	case c == '"':
		return kindString
	case c == '-' || (c >= '0' && c <= '9'):
		return kindNumber
	case c == '{':
		return "object"
	case c == '[':
		return "array"
	case c == 't' || c == 'f':
		return "boolean"
	default:
		return "null"
	}
}

func isObject(raw json.RawMessage) bool { return kindOf(raw) == "object" }

func isArray(raw json.RawMessage) bool { return kindOf(raw) == "array" }
