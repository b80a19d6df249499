package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"

	api "github.com/etesami/earthquake-feed/api"
	"github.com/etesami/earthquake-feed/pkg/utils"
)

var (
	titleColor = color.New(color.Bold)
	warnColor  = color.New(color.FgYellow)
	dimColor   = color.New(color.Faint)
)

// alertColor follows the PAGER alert levels.
func alertColor(alert string) *color.Color {
	switch alert {
	case "green":
		return color.New(color.FgGreen)
	case "yellow":
		return color.New(color.FgYellow)
	case "orange":
		return color.New(color.FgHiRed)
	case "red":
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.Reset)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeHeader(w io.Writer, s *api.Snapshot) {
	titleColor.Fprintln(w, s.Header.Title)
	fmt.Fprintf(w, "Generated: %s   Count: %d\n", utils.FormatUnixMilli(s.Header.TimeStamp), s.Header.Count)
	fmt.Fprintf(w, "URL: %s\n", s.Header.URL)
	source := s.Source
	if s.Source == "network" {
		source = fmt.Sprintf("%s (%s)", s.Source, s.Elapsed)
	}
	dimColor.Fprintf(w, "Source: %s   Ranked by: %s   Load: %s\n", source, s.RankedBy, s.LoadID)
	if s.Unranked {
		warnColor.Fprintf(w, "Events left in feed order: %s\n", s.RankError)
	}
}

func writeLabels(w io.Writer, s *api.Snapshot) {
	fmt.Fprintln(w)
	for i, label := range s.Labels() {
		alertColor(s.Events[i].Alert).Fprintf(w, "[%d] %s\n", i, label)
	}
}

func writeRecord(w io.Writer, r api.EventRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(k, v string) { fmt.Fprintf(tw, "%s\t%s\n", k, v) }
	row("id", r.ID)
	row("magnitude", strconv.FormatFloat(r.Magnitude, 'g', -1, 64))
	row("place", r.Place)
	row("time", utils.FormatUnixMilli(r.Time))
	row("tz", optionalInt(r.TZ))
	row("url", r.URL)
	row("felt", optionalInt(r.Felt))
	row("alert", alertColor(r.Alert).Sprint(orDash(r.Alert)))
	row("mmi", strconv.FormatFloat(r.MMI, 'g', -1, 64))
	row("longitude", strconv.FormatFloat(r.Longitude, 'f', -1, 64))
	row("latitude", strconv.FormatFloat(r.Latitude, 'f', -1, 64))
	row("depth", strconv.FormatFloat(r.Depth, 'f', -1, 64))
	_ = tw.Flush()
}

func writeHistory(w io.Writer, events []api.EventRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tMAG\tALERT\tPLACE\tID")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%g\t%s\t%s\t%s\n",
			utils.FormatUnixMilli(e.Time), e.Magnitude, orDash(e.Alert), e.Place, e.ID)
	}
	_ = tw.Flush()
}

func optionalInt(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
