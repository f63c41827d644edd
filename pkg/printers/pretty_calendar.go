package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/rota/pkg/schedule"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints the month containing on, highlighting the days that
// carry at least one booking.
func (pp *PrettyPrint) Calendar(on time.Time, bookings ...*schedule.Booking) {
	then := time.Date(on.Year(), on.Month(), 1, 0, 0, 0, 0, time.Local)
	days := DaysIn(then)

	count := make([]int, days)
	for _, b := range bookings {
		s := b.Start.Local()
		if s.Year() == then.Year() && s.Month() == then.Month() {
			count[s.Day()-1]++
		}
	}

	pp.PrintMonthCount(then, count)
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	tf.Printf("%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		if i < d {
			fmt.Print("   ")
		}
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			l2.Printf("%2d ", i+1)
		} else {
			l1.Printf("%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			fmt.Print("\n")
		}
	}
	fmt.Print("\n\n")
}

// StartDay reports the weekday the month of then starts on.
func StartDay(then time.Time) time.Weekday {
	first := time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, time.Local)
	return first.Weekday()
}

// DaysIn reports the number of days in the month of then.
func DaysIn(then time.Time) int {
	first := time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, time.Local)
	return first.AddDate(0, 1, -1).Day()
}
