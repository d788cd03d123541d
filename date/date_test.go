package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	// day 0 is the last day of the previous month.
	if got, want := New(2024, time.March, 0), New(2024, time.February, 29); got != want {
		t.Errorf("New(2024, March, 0) = %v want %v", got, want)
	}
	if got, want := New(2023, time.January, 31).AddMonth(1), New(2023, time.March, 3); got != want {
		t.Errorf("AddMonth(1) = %v want %v", got, want)
	}
}

func TestEndOfMonth(t *testing.T) {
	testCases := []struct {
		in   Date
		want Date
	}{
		{New(2024, time.February, 1), New(2024, time.February, 29)},
		{New(2023, time.February, 14), New(2023, time.February, 28)},
		{New(2025, time.December, 31), New(2025, time.December, 31)},
		{New(2025, time.April, 30), New(2025, time.April, 30)},
	}
	for _, tc := range testCases {
		if got := tc.in.EndOf(Monthly); got != tc.want {
			t.Errorf("%v.EndOf(Monthly) = %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-07-01", New(2025, time.July, 1), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{" 2019-07-20 ", New(2019, time.July, 20), false},
		{"0d", Today(), false},
		{"-1d", Today().Add(-1), false},
		{"+2w", Today().Add(14), false},
		{"-1m", Today().AddMonth(-1), false},
		{"07/01/2025", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestJSON(t *testing.T) {
	type doc struct {
		On   Date `json:"on"`
		Exit Date `json:"exit"`
	}
	in := doc{On: New(2023, time.December, 31)}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(data), `{"on":"2023-12-31","exit":""}`; got != want {
		t.Errorf("Marshal() = %s want %s", got, want)
	}
	var out doc
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out != in {
		t.Errorf("Unmarshal() = %v want %v", out, in)
	}
}

func TestText(t *testing.T) {
	d := New(2022, time.June, 1)
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	var got Date
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if got != d {
		t.Errorf("UnmarshalText(MarshalText()) = %v want %v", got, d)
	}

	var zero Date
	if err := zero.UnmarshalText(nil); err != nil || !zero.IsZero() {
		t.Errorf("UnmarshalText(nil) = %v, %v want zero date", zero, err)
	}
}
