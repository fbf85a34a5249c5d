package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/daylog/internal/client/models"
	"github.com/dmitrijs2005/daylog/internal/timex"
)

const calendarWidth = 7 * 4

// renderMonth writes a Monday-first calendar of month. Days with records are
// marked with '*' and listed below the grid with their highest scale value
// and total count.
func renderMonth(w io.Writer, month timex.Date, byDay map[int][]models.Record) {
	first := month.FirstOfMonth()
	title := fmt.Sprintf("%s %d", first.Month, first.Year)
	pad := (calendarWidth - len(title)) / 2
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", max(pad, 0)), title)
	fmt.Fprintln(w, " Mo  Tu  We  Th  Fr  Sa  Su")

	offset := (int(first.Time().Weekday()) + 6) % 7
	var line strings.Builder
	line.WriteString(strings.Repeat("    ", offset))

	days := first.DaysInMonth()
	for d := 1; d <= days; d++ {
		mark := " "
		if len(byDay[d]) > 0 {
			mark = "*"
		}
		fmt.Fprintf(&line, " %2d%s", d, mark)
		if (offset+d)%7 == 0 || d == days {
			fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}

	for d := 1; d <= days; d++ {
		recs := byDay[d]
		if len(recs) == 0 {
			continue
		}
		top, total := 0, 0
		for _, r := range recs {
			top = max(top, r.ScaleValue)
			total += r.Count
		}
		fmt.Fprintf(w, "%2d: %d record(s), max scale %d, count %d\n", d, len(recs), top, total)
	}
}
