package analytics

import (
	"fmt"
	"slices"
	"time"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// DueSoonDays is how many days ahead a return counts as due soon.
const DueSoonDays = 3

// Urgency classifies a rental's expected return against now.
type Urgency string

const (
	Overdue  Urgency = "overdue"
	DueToday Urgency = "due-today"
	DueSoon  Urgency = "due-soon"
	Normal   Urgency = "normal"
)

func (u Urgency) rank() int {
	switch u {
	case Overdue:
		return 0
	case DueToday:
		return 1
	case DueSoon:
		return 2
	default:
		return 3
	}
}

// Notice is the derived display state of an expected return time.
type Notice struct {
	Class        Urgency `json:"class"`
	Label        string  `json:"label"`
	Value        string  `json:"value"`
	OverdueDays  int     `json:"overdueDays,omitempty"`
	DaysUntilDue int     `json:"daysUntilDue,omitempty"`
}

// Classify compares expected with now by calendar day in now's location.
// It must be called on every read: the result changes as now advances.
func Classify(expected, now time.Time) Notice {
	days := calendarDays(now, expected.In(now.Location()))

	switch {
	case days == 0:
		return Notice{Class: DueToday, Label: "Due", Value: "Today"}
	case days < 0:
		return Notice{Class: Overdue, Label: "Overdue", Value: dayCount(-days), OverdueDays: -days}
	case days <= DueSoonDays:
		return Notice{Class: DueSoon, Label: "Due in", Value: dayCount(days), DaysUntilDue: days}
	default:
		return Notice{Class: Normal, Label: "Due in", Value: dayCount(days), DaysUntilDue: days}
	}
}

// calendarDays is the number of calendar days from a to b, ignoring clock time.
func calendarDays(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

func dayCount(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// RentalNotice pairs an open rental with its urgency.
type RentalNotice struct {
	Rental models.Rental `json:"rental"`
	Notice Notice        `json:"notice"`
}

// Open reports whether the rental still awaits its return.
func Open(r models.Rental) bool {
	return r.ReturnedAt == nil && r.Status != models.RentalReturned && !r.ExpectedReturnTime.IsZero()
}

// Notices classifies the open rentals, most urgent first, then by expected return.
func Notices(rentals []models.Rental, now time.Time) []RentalNotice {
	out := make([]RentalNotice, 0, len(rentals))
	for _, r := range rentals {
		if !Open(r) {
			continue
		}
		out = append(out, RentalNotice{Rental: r, Notice: Classify(r.ExpectedReturnTime, now)})
	}

	slices.SortStableFunc(out, func(a, b RentalNotice) int {
		if d := a.Notice.Class.rank() - b.Notice.Class.rank(); d != 0 {
			return d
		}
		return a.Rental.ExpectedReturnTime.Compare(b.Rental.ExpectedReturnTime)
	})
	return out
}

// CountByUrgency tallies notices per class.
func CountByUrgency(notices []RentalNotice) map[Urgency]int {
	counts := map[Urgency]int{}
	for _, n := range notices {
		counts[n.Notice.Class]++
	}
	return counts
}
