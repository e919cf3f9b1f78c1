package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// storedRecord accepts the looser shapes older versions persisted: numeric ids,
// amounts written as strings, full timestamps in the date field and epoch
// milliseconds for createdAt and updatedAt. Missing fields stay zero so the
// startup migration can backfill them.
type storedRecord struct {
	ID          json.RawMessage `json:"id"`
	Amount      json.RawMessage `json:"amount"`
	Description json.RawMessage `json:"description"`
	Category    json.RawMessage `json:"category"`
	Date        json.RawMessage `json:"date"`
	Status      json.RawMessage `json:"status"`
	Type        json.RawMessage `json:"type"`
	CreatedAt   json.RawMessage `json:"createdAt"`
	UpdatedAt   json.RawMessage `json:"updatedAt"`
}

var errUnsupportedValue = errors.New("unsupported value")

// decodeCollection decodes a JSON array record by record. Records that cannot be
// decoded are left out and reported in the joined error; a payload that is not an
// array returns no records at all.
func decodeCollection(data []byte) ([]entity.Transaction, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}

	transactions := make([]entity.Transaction, 0, len(raws))
	var errs []error
	for i, raw := range raws {
		t, err := decodeRecord(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i+1, err))
			continue
		}
		transactions = append(transactions, t)
	}
	return transactions, errors.Join(errs...)
}

func decodeRecord(raw json.RawMessage) (entity.Transaction, error) {
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return entity.Transaction{}, errors.New("record is not an object")
	}

	var r storedRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return entity.Transaction{}, err
	}

	var t entity.Transaction
	var err error
	if t.ID, err = scalarText(r.ID); err != nil {
		return t, fmt.Errorf("id: %w", err)
	}
	if t.Description, err = scalarText(r.Description); err != nil {
		return t, fmt.Errorf("description: %w", err)
	}
	if t.Category, err = scalarText(r.Category); err != nil {
		return t, fmt.Errorf("category: %w", err)
	}

	amount, err := scalarText(r.Amount)
	if err != nil {
		return t, fmt.Errorf("amount: %w", err)
	}
	if amount != "" {
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return t, fmt.Errorf("amount: %w", err)
		}
	}

	date, err := scalarText(r.Date)
	if err != nil {
		return t, fmt.Errorf("date: %w", err)
	}
	if date != "" {
		if t.Date, err = entity.ParseLooseDate(date); err != nil {
			return t, err
		}
	}

	status, err := scalarText(r.Status)
	if err != nil {
		return t, fmt.Errorf("status: %w", err)
	}
	t.Status = entity.TransactionStatus(status)

	kind, err := scalarText(r.Type)
	if err != nil {
		return t, fmt.Errorf("type: %w", err)
	}
	t.Type = entity.TransactionType(kind)

	t.CreatedAt = storedTime(r.CreatedAt)
	t.UpdatedAt = storedTime(r.UpdatedAt)
	return t, nil
}

// scalarText returns a JSON string as is and a JSON number as its literal text.
// Null and absent values are empty.
func scalarText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}

	switch c := trimmed[0]; {
	case c == '"':
		var s string
		err := json.Unmarshal(trimmed, &s)
		return s, err
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	default:
		return "", errUnsupportedValue
	}
}

// storedTime parses an ISO-8601 timestamp or epoch milliseconds. Anything else is
// the zero time and gets backfilled.
func storedTime(raw json.RawMessage) time.Time {
	text, err := scalarText(raw)
	if err != nil || text == "" {
		return time.Time{}
	}
	if ms, err := strconv.ParseInt(text, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	t, err := entity.ParseTimestamp(text)
	if err != nil {
		return time.Time{}
	}
	return t
}
