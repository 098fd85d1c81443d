package funance

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"01/15/2025", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDate_Sub(t *testing.T) {
	tests := []struct {
		name string
		d, x Date
		want int
	}{
		{"same day", NewDate(2025, 3, 17), NewDate(2025, 3, 17), 0},
		{"next day", NewDate(2025, 3, 18), NewDate(2025, 3, 17), 1},
		{"across a month", NewDate(2025, 2, 1), NewDate(2025, 1, 2), 30},
		{"across a leap day", NewDate(2024, 3, 1), NewDate(2024, 2, 28), 2},
		{"negative", NewDate(2025, 3, 17), NewDate(2025, 3, 18), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Sub(tt.x); got != tt.want {
				t.Errorf("Sub() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDate_AddNormalizes(t *testing.T) {
	got := NewDate(2025, 1, 31).Add(1)
	want := NewDate(2025, 2, 1)
	if got != want {
		t.Errorf("Add(1) = %v, want %v", got, want)
	}
}

func TestDate_Ordering(t *testing.T) {
	earlier := NewDate(2025, 3, 17)
	later := NewDate(2025, 3, 18)

	if !earlier.Before(later) || later.Before(earlier) {
		t.Errorf("Before() inconsistent for %v and %v", earlier, later)
	}
	if !later.After(earlier) || earlier.After(later) {
		t.Errorf("After() inconsistent for %v and %v", earlier, later)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 5, 21)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `"2024-05-21"` {
		t.Errorf("json.Marshal() = %s, want %q", data, `"2024-05-21"`)
	}

	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got != d {
		t.Errorf("round trip got %v, want %v", got, d)
	}

	if err := json.Unmarshal([]byte(`"not-a-date"`), &got); err == nil {
		t.Errorf("json.Unmarshal() expected error for invalid date")
	}
}
