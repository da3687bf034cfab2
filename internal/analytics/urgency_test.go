package analytics

import (
	"testing"
	"time"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

func TestClassifyBoundaries(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, loc)
	startOfToday := time.Date(2024, 6, 15, 0, 0, 0, 0, loc)

	tests := []struct {
		name     string
		expected time.Time
		want     Notice
	}{
		{"start of today", startOfToday, Notice{Class: DueToday, Label: "Due", Value: "Today"}},
		{"later today", now.Add(3 * time.Hour), Notice{Class: DueToday, Label: "Due", Value: "Today"}},
		{"previous day", startOfToday.Add(-time.Microsecond), Notice{Class: Overdue, Label: "Overdue", Value: "1 day", OverdueDays: 1}},
		{"a week ago", now.AddDate(0, 0, -7), Notice{Class: Overdue, Label: "Overdue", Value: "7 days", OverdueDays: 7}},
		{"tomorrow", now.Add(24 * time.Hour), Notice{Class: DueSoon, Label: "Due in", Value: "1 day", DaysUntilDue: 1}},
		{"in three days", now.AddDate(0, 0, 3), Notice{Class: DueSoon, Label: "Due in", Value: "3 days", DaysUntilDue: 3}},
		{"in ten days", now.AddDate(0, 0, 10), Notice{Class: Normal, Label: "Due in", Value: "10 days", DaysUntilDue: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.expected, now); got != tt.want {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassifyUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, 6, 15, 1, 0, 0, 0, loc)
	// 20:00 UTC on the 14th is 01:30 on the 15th in IST.
	expected := time.Date(2024, 6, 14, 20, 0, 0, 0, time.UTC)

	if got := Classify(expected, now); got.Class != DueToday {
		t.Errorf("expected due-today in now's zone, got %+v", got)
	}
}

func TestNoticesOrderAndFilter(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	returned := now.Add(-time.Hour)

	rentals := []models.Rental{
		{ID: "normal", ExpectedReturnTime: now.AddDate(0, 0, 9)},
		{ID: "soon", ExpectedReturnTime: now.AddDate(0, 0, 2)},
		{ID: "returned", ExpectedReturnTime: now.AddDate(0, 0, -3), ReturnedAt: &returned},
		{ID: "overdue-old", ExpectedReturnTime: now.AddDate(0, 0, -5)},
		{ID: "today", ExpectedReturnTime: now.Add(time.Hour)},
		{ID: "overdue-new", ExpectedReturnTime: now.AddDate(0, 0, -1)},
		{ID: "closed", ExpectedReturnTime: now.AddDate(0, 0, -2), Status: models.RentalReturned},
	}

	notices := Notices(rentals, now)
	want := []string{"overdue-old", "overdue-new", "today", "soon", "normal"}
	if len(notices) != len(want) {
		t.Fatalf("expected %d notices, got %d", len(want), len(notices))
	}
	for i, id := range want {
		if notices[i].Rental.ID != id {
			t.Errorf("position %d: got %s, want %s", i, notices[i].Rental.ID, id)
		}
	}

	counts := CountByUrgency(notices)
	if counts[Overdue] != 2 || counts[DueToday] != 1 || counts[DueSoon] != 1 || counts[Normal] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
}
