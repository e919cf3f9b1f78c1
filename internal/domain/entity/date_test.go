package entity

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid date", "2024-03-15", false},
		{"leap day", "2024-02-29", false},
		{"non-leap day", "2023-02-29", true},
		{"impossible day", "2024-02-30", true},
		{"wrong separator", "2024/03/15", true},
		{"missing padding", "2024-3-5", true},
		{"timestamp", "2024-03-15T10:00:00Z", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got date %s", tt.input, d)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.String() != tt.input {
				t.Errorf("expected %s, got %s", tt.input, d.String())
			}
		})
	}
}

func TestDate_Arithmetic(t *testing.T) {
	d := MustParseDate("2024-01-31")

	if got := d.AddDays(1).String(); got != "2024-02-01" {
		t.Errorf("expected 2024-02-01, got %s", got)
	}
	if got := NewDate(2024, time.January, 1).AddMonths(-1).String(); got != "2023-12-01" {
		t.Errorf("expected 2023-12-01, got %s", got)
	}
	if !d.Before(d.AddDays(1)) || d.After(d) {
		t.Error("expected Before and After to be strict")
	}
	if d.Compare(MustParseDate("2024-01-31")) != 0 {
		t.Error("expected equal dates to compare as 0")
	}
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	moment := time.Date(2024, time.March, 1, 0, 30, 0, 0, paris)

	if got := DateOf(moment).String(); got != "2024-03-01" {
		t.Errorf("expected 2024-03-01, got %s", got)
	}
}

func TestDate_JSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		data, err := json.Marshal(MustParseDate("2024-03-15"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `"2024-03-15"` {
			t.Errorf("expected \"2024-03-15\", got %s", data)
		}
	})

	t.Run("zero date marshals as empty string", func(t *testing.T) {
		data, _ := json.Marshal(Date{})
		if string(data) != `""` {
			t.Errorf("expected empty string, got %s", data)
		}
	})

	t.Run("null and empty decode to zero", func(t *testing.T) {
		for _, input := range []string{`null`, `""`} {
			d := MustParseDate("2024-03-15")
			if err := json.Unmarshal([]byte(input), &d); err != nil {
				t.Fatalf("unexpected error for %s: %v", input, err)
			}
			if !d.IsZero() {
				t.Errorf("expected zero date for %s, got %s", input, d)
			}
		}
	})

	t.Run("invalid date is rejected", func(t *testing.T) {
		var d Date
		if err := json.Unmarshal([]byte(`"2024-13-01"`), &d); err == nil {
			t.Error("expected error for month 13")
		}
		if err := json.Unmarshal([]byte(`20240301`), &d); err == nil {
			t.Error("expected error for a number")
		}
	})
}

func TestParseLooseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2024-03-15", "2024-03-15", false},
		{"2024-03-15T23:30:00Z", "2024-03-15", false},
		{"2024-03-15T23:30:00+02:00", "2024-03-15", false},
		{"2024-03-15T10:00", "2024-03-15", false},
		{"15/03/2024", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseLooseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got date %s", tt.input, d)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, d.String())
			}
		})
	}
}
