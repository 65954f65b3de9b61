package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yourusername/paddock-picks/internal/models"
	"github.com/yourusername/paddock-picks/internal/service"
)

func renderReport(out io.Writer, report *service.Report, showAll bool) {
	s := report.Stats
	fmt.Fprintf(out, "run %s: %d tracks, %d races, %d runners, %d ignored lines\n\n",
		report.RunID, s.DetectedTracks, s.DetectedRaces, s.DetectedRunnerLines, s.IgnoredLines)

	if showAll {
		renderCards(out, report.Picks)
		return
	}
	renderReportCards(out, report.Recommended, countNeedingCorrection(report.Picks))
}

func renderReportCards(out io.Writer, recommended []models.PickCard, pending int) {
	if len(recommended) == 0 {
		fmt.Fprintln(out, "no S or A picks")
	} else {
		renderCards(out, recommended)
	}
	if pending > 0 {
		fmt.Fprintf(out, "\n%d pick(s) use estimated or missing place odds; paste fresh odds with `picks correct`\n", pending)
	}
}

func renderCards(out io.Writer, cards []models.PickCard) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tRACE\tHORSE\tJOCKEY\tPLACE\tNOTES")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Rank,
			c.RaceLabel()+"R",
			orDash(c.HorseName),
			orDash(c.JockeyName),
			orDash(c.PlaceRangeText),
			notes(c),
		)
	}
	_ = tw.Flush()
}

func notes(c models.PickCard) string {
	if c.Reason != "" {
		return c.Reason
	}
	return strings.Join(c.Tags, " / ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func countNeedingCorrection(cards []models.PickCard) int {
	n := 0
	for _, c := range cards {
		if c.HasSelection() && !c.PlaceLow.IsMeasured() {
			n++
		}
	}
	return n
}
