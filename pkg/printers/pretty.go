package printers

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	isatty "github.com/mattn/go-isatty"

	"tableflip.dev/rota/pkg/app"
	"tableflip.dev/rota/pkg/schedule"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("1234  "))
)

func init() {
	// Piped output gets plain text.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" booking")
	default:
		_, _ = c.Println(" bookings")
	}
}

// Lane prints one roster lane's bookings for the day, sub-bookings
// indented under their container.
func (pp *PrettyPrint) Lane(section app.ReportSection) {
	head := color.New(color.Bold)
	faint := color.New(color.Faint)

	_, _ = head.Printf("%s", section.Resource.Label)
	_, _ = faint.Printf("  %s", section.Resource.Category)
	if section.Booked > 0 {
		_, _ = faint.Printf("  (%s booked)", section.Booked)
	}
	fmt.Println("")

	if len(section.Bookings) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, b := range section.Bookings {
		pp.addBookingRows(tbl, b)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Booking prints a single booking with its sub-bookings.
func (pp *PrettyPrint) Booking(b *schedule.Booking) {
	tbl := uitable.New()
	tbl.Separator = "  "
	pp.addBookingRows(tbl, b)
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func (pp *PrettyPrint) addBookingRows(tbl *uitable.Table, b *schedule.Booking) {
	span := fmt.Sprintf("%s–%s", b.Start.Clock(), b.End.Clock())
	title := b.Title
	if badge := b.Badge(); badge != "" {
		title = fmt.Sprintf("%s [%s]", title, badge)
	}
	if pp.ShowID {
		tbl.AddRow(fmt.Sprintf("%d", b.ID), span, title, b.Room)
	} else {
		tbl.AddRow(span, title, b.Room)
	}
	for _, s := range b.Subs {
		line := s.Title
		if s.Patient != "" {
			line = fmt.Sprintf("%s (%s)", line, s.Patient)
		}
		if pp.ShowID {
			tbl.AddRow("", "  "+s.When.String(), "  "+line, s.Room)
		} else {
			tbl.AddRow("  "+s.When.String(), "  "+line, s.Room)
		}
	}
}

// Reply prints an assistant message.
func (pp *PrettyPrint) Reply(text string) {
	i := color.New(color.Italic)
	_, _ = i.Println(text)
}
