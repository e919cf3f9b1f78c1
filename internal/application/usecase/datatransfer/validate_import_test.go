package datatransfer

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

const validRecord = `{"id": "t1", "amount": -45.99, "description": " <b>Carrefour</b> ", "category": "Courses",
	"date": "2024-01-05", "status": "completed", "type": "expense",
	"createdAt": "2024-01-05T10:00:00.000Z", "updatedAt": "2024-01-05T10:00:00Z"}`

func envelope(app string, records ...string) []byte {
	return []byte(fmt.Sprintf(`{"version": 1, "app": %q, "transactions": [%s]}`, app, strings.Join(records, ",")))
}

func TestValidateImport_ValidFile(t *testing.T) {
	result := ValidateImport(envelope(entity.AppIdentifier, validRecord))

	if !result.Valid {
		t.Fatalf("expected valid file, got errors %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
	if result.Stats.Total != 1 || result.Stats.Valid != 1 || result.Stats.Invalid != 0 {
		t.Errorf("unexpected stats %+v", result.Stats)
	}

	got := result.Data.Transactions[0]
	if got.Description != "bCarrefour/b" {
		t.Errorf("expected sanitized description, got %q", got.Description)
	}
	if got.Amount.String() != "-45.99" || got.Date.String() != "2024-01-05" {
		t.Errorf("unexpected transaction %+v", got)
	}
	if result.Data.Version != 1 {
		t.Errorf("expected version 1, got %d", result.Data.Version)
	}
}

func TestValidateImport_ForeignAppIsAWarning(t *testing.T) {
	result := ValidateImport(envelope("Other", validRecord))

	if !result.Valid {
		t.Fatalf("expected valid file, got errors %v", result.Errors)
	}
	if len(result.Warnings) != 1 || result.Warnings[0] != msgForeignApp {
		t.Errorf("expected foreign app warning, got %v", result.Warnings)
	}
}

func TestValidateImport_FileLevelErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"invalid json", []byte(`{"transactions": [`), msgInvalidJSON},
		{"top-level array", []byte(`[]`), msgInvalidShape},
		{"top-level string", []byte(`"hello"`), msgInvalidShape},
		{"missing transactions", []byte(`{"app": "zFinance"}`), msgNoTransactions},
		{"transactions not a list", []byte(`{"app": "zFinance", "transactions": {}}`), msgNoTransactions},
		{"too large", bytes.Repeat([]byte(" "), MaxImportSize+1), msgTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateImport(tt.raw)
			if result.Valid {
				t.Fatal("expected invalid file")
			}
			if len(result.Errors) != 1 || result.Errors[0] != tt.want {
				t.Errorf("expected %q, got %v", tt.want, result.Errors)
			}
			if result.Data != nil {
				t.Error("expected no data")
			}
		})
	}
}

func TestValidateImport_RecordErrors(t *testing.T) {
	replace := func(old, new string) string { return strings.Replace(validRecord, old, new, 1) }

	tests := []struct {
		name   string
		record string
		want   string
	}{
		{"not an object", `42`, `Transaction 1: invalid format`},
		{"missing id", replace(`"id": "t1", `, ``), `Transaction 1: missing field "id"`},
		{"amount as string", replace(`-45.99`, `"-45.99"`), `Transaction 1: "amount" must be of type number`},
		{"null category", replace(`"Courses"`, `null`), `Transaction 1: "category" must be of type string`},
		{"date format", replace(`"2024-01-05",`, `"05/01/2024",`), `Transaction 1: invalid date (expected format: YYYY-MM-DD)`},
		{"impossible date", replace(`"2024-01-05",`, `"2024-02-30",`), `Transaction 1: invalid date (expected format: YYYY-MM-DD)`},
		{"bad status", replace(`"completed"`, `"lost"`), `Transaction 1: invalid status`},
		{"bad type", replace(`"expense"`, `"gift"`), `Transaction 1: invalid type`},
		{"bad timestamp", replace(`"2024-01-05T10:00:00.000Z"`, `"yesterday"`), `Transaction 1: invalid createdAt`},
		{"overflowing amount", replace(`-45.99`, `1e400`), `Transaction 1: invalid amount`},
		{"empty id", replace(`"t1"`, `""`), `Transaction 1: invalid id`},
		{"blank id", replace(`"t1"`, `"   "`), `Transaction 1: invalid id`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateImport(envelope(entity.AppIdentifier, tt.record))
			if result.Valid {
				t.Fatal("expected invalid file")
			}
			if len(result.Errors) == 0 || result.Errors[0] != tt.want {
				t.Errorf("expected %q, got %v", tt.want, result.Errors)
			}
			if result.Stats.Invalid != 1 {
				t.Errorf("expected 1 invalid record, got %+v", result.Stats)
			}
		})
	}
}

func TestValidateImport_OneBadRecordRejectsTheBatch(t *testing.T) {
	bad := strings.Replace(validRecord, `"completed"`, `"lost"`, 1)
	result := ValidateImport(envelope(entity.AppIdentifier, validRecord, bad))

	if result.Valid || result.Data != nil {
		t.Fatal("expected the whole batch to be rejected")
	}
	if result.Errors[0] != "Transaction 2: invalid status" {
		t.Errorf("unexpected errors %v", result.Errors)
	}
	if result.Stats.Valid != 1 || result.Stats.Invalid != 1 {
		t.Errorf("unexpected stats %+v", result.Stats)
	}
}

func TestValidateImport_CapsErrorMessages(t *testing.T) {
	records := make([]string, 15)
	for i := range records {
		records[i] = `{}`
	}

	result := ValidateImport(envelope(entity.AppIdentifier, records...))

	if len(result.Errors) != MaxReportedErrors+1 {
		t.Fatalf("expected %d messages, got %d", MaxReportedErrors+1, len(result.Errors))
	}
	// 15 records with 9 missing fields each
	if last := result.Errors[MaxReportedErrors]; last != "... and 125 more errors" {
		t.Errorf("unexpected summary line %q", last)
	}
}

func TestValidateImport_EmptyListIsValid(t *testing.T) {
	result := ValidateImport(envelope(entity.AppIdentifier))

	if !result.Valid || result.Data == nil || len(result.Data.Transactions) != 0 {
		t.Errorf("expected a valid empty import, got %+v", result)
	}
}

func TestValidateImport_DuplicateIDsRejectTheBatch(t *testing.T) {
	other := strings.Replace(validRecord, `Carrefour`, `Lidl`, 1)
	result := ValidateImport(envelope(entity.AppIdentifier, validRecord, other))

	if result.Valid || result.Data != nil {
		t.Fatal("expected the whole batch to be rejected")
	}
	want := "Transaction 2: duplicate id (same as transaction 1)"
	if len(result.Errors) != 1 || result.Errors[0] != want {
		t.Errorf("expected %q, got %v", want, result.Errors)
	}
	if result.Stats.Valid != 1 || result.Stats.Invalid != 1 {
		t.Errorf("unexpected stats %+v", result.Stats)
	}
}

func TestValidateImport_TrimsIDs(t *testing.T) {
	padded := strings.Replace(validRecord, `"t1"`, `" t1 "`, 1)
	result := ValidateImport(envelope(entity.AppIdentifier, padded))

	if !result.Valid {
		t.Fatalf("expected valid file, got errors %v", result.Errors)
	}
	if got := result.Data.Transactions[0].ID; got != "t1" {
		t.Errorf("expected t1, got %q", got)
	}
}
