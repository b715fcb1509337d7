package root

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/mindlab/internal/domain/model"
)

var dateLayouts = []string{"2006-01-02 15:04", "2006-01-02"}

// parseDate reads s in loc, the journal's configured zone.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q, want YYYY-MM-DD [HH:MM]", s)
}

func newAddCmd(sf *storeFlags) *cobra.Command {
	rec := model.NewRecord("", 0)
	var date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a journal entry (score 0 for training)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("score") {
				return errors.New("--score is required")
			}
			rec.Venue = strings.TrimSpace(rec.Venue)

			cfg, err := loadConfig(cmd.Context(), sf)
			if err != nil {
				return err
			}
			if date != "" {
				ts, err := parseDate(date, cfg.Location())
				if err != nil {
					return err
				}
				rec.Timestamp = ts
			}

			svc, cleanup, err := openService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			receipt, err := svc.Submit(cmd.Context(), rec, "")
			if err != nil {
				return err
			}

			kind := fmt.Sprintf("score %d", receipt.Entry.Score)
			if receipt.Entry.Training {
				kind = "training"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged %s (%s) on %s\n",
				receipt.Entry.Venue, kind, receipt.Entry.Date.In(cfg.Location()).Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&rec.Venue, "venue", "", "Tournament or course")
	cmd.Flags().IntVarP(&rec.Score, "score", "s", 0, "Strokes; 0 marks a training session")
	cmd.Flags().IntVar(&rec.Acceptance, "acceptance", model.DefaultRating, "Acceptance (1-5)")
	cmd.Flags().IntVar(&rec.Routine, "routine", model.DefaultRating, "Routine (1-5)")
	cmd.Flags().IntVar(&rec.Decision, "decision", model.DefaultRating, "Decision (1-5)")
	cmd.Flags().IntVar(&rec.Focus, "focus", model.DefaultRating, "Focus (1-5)")
	cmd.Flags().IntVar(&rec.Energy, "energy", model.DefaultRating, "Energy (1-5)")
	cmd.Flags().IntVar(&rec.Tension, "tension", model.DefaultRating, "Tension (1 relaxed, 5 blocked)")
	cmd.Flags().StringVarP(&rec.Notes, "notes", "n", "", "Free-text notes")
	cmd.Flags().StringVar(&date, "date", "", "Entry date YYYY-MM-DD [HH:MM], defaults to now")
	_ = cmd.MarkFlagRequired("venue")

	return cmd
}
