package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/paddock-picks/internal/models"
)

func newCorrectCmd() *cobra.Command {
	var (
		entriesPath string
		oddsPath    string
		track       string
		raceNo      int
		horse       string
	)

	cmd := &cobra.Command{
		Use:   "correct",
		Short: "Replace a pick's estimated place odds with freshly pasted odds",
		Long: `Analyzes the entry paste, then re-reads one runner's place range from the
odds paste and re-scores that pick. At most one of --entries and --odds may be "-"
(stdin).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if entriesPath == "-" && oddsPath == "-" {
				return errors.New("--entries and --odds cannot both read stdin")
			}
			entries, err := readInput(cmd.InOrStdin(), entriesPath)
			if err != nil {
				return err
			}
			odds, err := readInput(cmd.InOrStdin(), oddsPath)
			if err != nil {
				return err
			}

			svc := newAnalysisService(false)
			report, err := svc.Analyze(cmd.Context(), entries)
			if err != nil {
				return err
			}

			session := svc.NewSession(report)
			pick, err := session.Correct(models.NewPickKey(track, raceNo, horse), odds)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "corrected:")
			renderCards(out, []models.PickCard{*pick})
			fmt.Fprintln(out)
			renderReportCards(out, session.Recommended(), len(session.Worklist()))
			return nil
		},
	}

	cmd.Flags().StringVar(&entriesPath, "entries", "", "File with the pasted entry table")
	cmd.Flags().StringVar(&oddsPath, "odds", "", "File with the freshly pasted odds")
	cmd.Flags().StringVar(&track, "track", "", "Track of the pick (empty for races without a venue)")
	cmd.Flags().IntVar(&raceNo, "race", 0, "Race number of the pick")
	cmd.Flags().StringVar(&horse, "horse", "", "Horse name of the pick (empty for picks without a recovered name)")
	for _, name := range []string{"entries", "odds", "race"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
