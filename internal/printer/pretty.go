// Package printer renders agenda projections for terminals.
package printer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/example/agenda/internal/application"
	"github.com/example/agenda/internal/calendar"
)

const dateLayout = "Mon Jan 2 15:04"

// PrettyPrint writes tables of events, week buckets and quick notes.
type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Palette maps an event type to a color name such as "blue" or "pink".
	Palette map[string]string
	// Location renders event dates; time.Local when nil.
	Location *time.Location
	ShowID   bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) loc() *time.Location {
	if pp.Location != nil {
		return pp.Location
	}
	return time.Local
}

// Title prints an underlined heading followed by an entry count.
func (pp *PrettyPrint) Title(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " - 1 entry")
	default:
		_, _ = c.Fprintf(pp.out(), " - %d entries\n", count)
	}
}

// Events prints one row per event in the given order.
func (pp *PrettyPrint) Events(title string, events []application.Event) {
	pp.Title(title, len(events))
	if len(events) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	for _, e := range events {
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, color.New(color.FgHiYellow, color.Faint).Sprint(e.ID))
		}
		row = append(row,
			e.Date.In(pp.loc()).Format(dateLayout),
			pp.Badge(e.Type),
			e.Title,
			recurrenceLabel(e.Recurrence),
			strings.Join(e.Notes, "; "),
		)
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}

// Week prints the seven buckets of a week view, listing each day's event
// titles with their type badge.
func (pp *PrettyPrint) Week(buckets []application.WeekBucket) {
	if len(buckets) == 0 {
		return
	}
	first, last := buckets[0].Day, buckets[len(buckets)-1].Day
	color.New(color.Bold, color.Underline).Fprintf(pp.out(), "Week %s to %s\n", first, last)

	tbl := uitable.New()
	tbl.Separator = "  "
	bold := color.New(color.Bold)
	for _, bucket := range buckets {
		label := fmt.Sprintf("%s %s", bucket.Day.Weekday().String()[:3], bucket.Day)
		if len(bucket.Events) == 0 {
			tbl.AddRow(bold.Sprint(label), color.New(color.Faint, color.Italic).Sprint("none"))
			continue
		}
		for i, e := range bucket.Events {
			if i > 0 {
				label = ""
			}
			tbl.AddRow(bold.Sprint(label), e.Date.In(pp.loc()).Format("15:04"), pp.Badge(e.Type), e.Title)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}

// Month prints a calendar grid of the month containing reference. Days that
// carry markers are highlighted with the color of their first event type.
func (pp *PrettyPrint) Month(reference time.Time, weekStart time.Weekday, markers map[calendar.Day][]application.DayMarker) {
	days := calendar.MonthDays(reference, pp.loc())
	if len(days) == 0 {
		return
	}
	w := pp.out()

	color.New(color.Bold).Fprintf(w, "%s %d\n", days[0].Month, days[0].Year)
	header := make([]string, calendar.DaysPerWeek)
	for i := range header {
		header[i] = time.Weekday((int(weekStart)+i)%calendar.DaysPerWeek).String()[:2]
	}
	color.New(color.Faint).Fprintln(w, strings.Join(header, " "))

	offset := (int(days[0].Weekday()) - int(weekStart) + calendar.DaysPerWeek) % calendar.DaysPerWeek
	_, _ = fmt.Fprint(w, strings.Repeat("   ", offset))
	for i, day := range days {
		cell := fmt.Sprintf("%2d", day.Day)
		if m := markers[day]; len(m) > 0 {
			cell = pp.colorFor(m[0].Type).Add(color.Bold).Sprint(cell)
		} else {
			cell = color.New(color.Faint).Sprint(cell)
		}
		_, _ = fmt.Fprint(w, cell)
		if (offset+i+1)%calendar.DaysPerWeek == 0 || i == len(days)-1 {
			_, _ = fmt.Fprintln(w)
		} else {
			_, _ = fmt.Fprint(w, " ")
		}
	}
	_, _ = fmt.Fprintln(w)
}

// Notes prints quick notes with the event each one is attached to.
func (pp *PrettyPrint) Notes(notes []application.QuickNote) {
	pp.Title("Quick notes", len(notes))
	if len(notes) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 60
	faint := color.New(color.Faint)
	for _, n := range notes {
		link := faint.Sprint("free")
		if n.Linked() {
			link = n.EventID
		}
		tbl.AddRow(n.CreatedAt.In(pp.loc()).Format(dateLayout), link, n.Content)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}

// Badge returns the event type tinted with its palette color.
func (pp *PrettyPrint) Badge(eventType string) string {
	return pp.colorFor(eventType).Sprintf("[%s]", eventType)
}

func (pp *PrettyPrint) colorFor(eventType string) *color.Color {
	return ColorByName(pp.Palette[eventType])
}

func (pp *PrettyPrint) none() {
	_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), " none\n\n")
}

// ColorByName maps a palette color name to a terminal color. Terminals have
// no orange or pink, so they fall back to yellow and magenta. Unknown names
// render faint.
func ColorByName(name string) *color.Color {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "blue":
		return color.New(color.FgBlue)
	case "green":
		return color.New(color.FgGreen)
	case "orange", "yellow":
		return color.New(color.FgYellow)
	case "pink", "magenta", "purple":
		return color.New(color.FgMagenta)
	case "red":
		return color.New(color.FgRed)
	case "cyan":
		return color.New(color.FgCyan)
	case "white":
		return color.New(color.FgWhite)
	}
	return color.New(color.Faint)
}

func recurrenceLabel(r application.Recurrence) string {
	if r == "" || r == application.RecurrenceNone {
		return ""
	}
	return "↻ " + string(r)
}
