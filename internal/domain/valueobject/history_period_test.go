package valueobject

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/cash-register/backend/internal/domain/error"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		t.Fatalf("invalid time %q: %v", value, err)
	}
	return parsed
}

func TestParseHistoryPeriod(t *testing.T) {
	tests := []struct {
		input   string
		want    HistoryPeriod
		wantErr bool
	}{
		{"", "", false},
		{"day", HistoryPeriodDay, false},
		{"MONTH", HistoryPeriodMonth, false},
		{" year ", HistoryPeriodYear, false},
		{"week", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHistoryPeriod(tt.input)
			if tt.wantErr {
				if !errors.Is(err, domainerror.ErrInvalidHistoryPeriod) {
					t.Errorf("expected ErrInvalidHistoryPeriod, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPeriodRange(t *testing.T) {
	now := mustTime(t, "2024-02-14T15:30:00Z")

	tests := []struct {
		period HistoryPeriod
		from   string
		to     string
	}{
		{HistoryPeriodDay, "2024-02-14T00:00:00Z", "2024-02-14T23:59:59.999Z"},
		{HistoryPeriodMonth, "2024-02-01T00:00:00Z", "2024-02-29T23:59:59.999Z"},
		{HistoryPeriodYear, "2024-01-01T00:00:00Z", "2024-12-31T23:59:59.999Z"},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			r := PeriodRange(tt.period, now)
			if r.From == nil || r.To == nil {
				t.Fatal("expected both bounds")
			}
			if !r.From.Equal(mustTime(t, tt.from)) {
				t.Errorf("From = %s, want %s", r.From, tt.from)
			}
			if !r.To.Equal(mustTime(t, tt.to)) {
				t.Errorf("To = %s, want %s", r.To, tt.to)
			}
		})
	}
}

func TestPeriodRange_UsesLocationOfNow(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	now := time.Date(2024, 7, 1, 1, 0, 0, 0, loc)

	r := PeriodRange(HistoryPeriodDay, now)

	want := time.Date(2024, 7, 1, 0, 0, 0, 0, loc)
	if !r.From.Equal(want) {
		t.Errorf("From = %s, want %s", r.From, want)
	}
}

func TestResolveHistoryRange(t *testing.T) {
	now := mustTime(t, "2024-03-20T12:00:00Z")

	t.Run("no filter is unbounded", func(t *testing.T) {
		r, err := ResolveHistoryRange("", "", "", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !r.IsUnbounded() {
			t.Error("expected unbounded range")
		}
	})

	t.Run("end date is inclusive through the last millisecond", func(t *testing.T) {
		r, err := ResolveHistoryRange("", "2024-03-01", "2024-03-10", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !r.Contains(mustTime(t, "2024-03-10T23:59:59.999Z")) {
			t.Error("closing at the boundary should be included")
		}
		if r.Contains(mustTime(t, "2024-03-11T00:00:00Z")) {
			t.Error("closing after the end date should be excluded")
		}
		if r.Contains(mustTime(t, "2024-02-29T23:59:59Z")) {
			t.Error("closing before the start date should be excluded")
		}
	})

	t.Run("period wins over explicit dates", func(t *testing.T) {
		r, err := ResolveHistoryRange(HistoryPeriodDay, "2020-01-01", "2020-01-02", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !r.From.Equal(mustTime(t, "2024-03-20T00:00:00Z")) {
			t.Errorf("expected today's range, got From=%s", r.From)
		}
	})

	t.Run("only start date", func(t *testing.T) {
		r, err := ResolveHistoryRange("", "2024-03-15T08:00:00Z", "", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.To != nil {
			t.Error("expected open end")
		}
		if !r.Contains(mustTime(t, "2030-01-01T00:00:00Z")) {
			t.Error("open end should include any later closing")
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := ResolveHistoryRange("", "not-a-date", "", now)
		if !errors.Is(err, domainerror.ErrInvalidDateRange) {
			t.Errorf("expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := ResolveHistoryRange("", "2024-03-10", "2024-03-01", now)
		if !errors.Is(err, domainerror.ErrInvalidDateRange) {
			t.Errorf("expected ErrInvalidDateRange, got %v", err)
		}
	})
}
