package seed

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/mindlab/internal/domain/aggregate"
	"github.com/okian/mindlab/internal/domain/model"
	"github.com/okian/mindlab/internal/domain/types"
	"github.com/okian/mindlab/pkg/logger"
)

// verifyAnalysis recomputes the skill means from the period history and
// compares them with the served analysis.
func verifyAnalysis(ctx context.Context, client *Client, token string, tolerance float64, stats *Stats) error {
	history, err := client.History(ctx, token)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	analysis, err := client.Analysis(ctx, token)
	if err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	if err := compare(history, analysis, tolerance); err != nil {
		return err
	}
	stats.Verified = len(history)

	logger.Get().Info(ctx, "analysis verified",
		logger.String("period", analysis.Label),
		logger.Int("entries", analysis.Count))
	return nil
}

func compare(history []types.Entry, analysis types.Analysis, tolerance float64) error {
	if analysis.Count != len(history) {
		return fmt.Errorf("analysis counts %d entries, history has %d", analysis.Count, len(history))
	}
	if len(history) == 0 {
		if !analysis.Empty {
			return fmt.Errorf("empty history but analysis is not marked empty")
		}
		return nil
	}

	records := make([]model.Record, len(history))
	for i, e := range history {
		records[i] = e.Record()
	}
	local, err := aggregate.Aggregate(records, model.AllSkills())
	if err != nil {
		return fmt.Errorf("local aggregate: %w", err)
	}

	if len(analysis.Skills) != len(model.AllSkills()) {
		return fmt.Errorf("analysis has %d skills, want %d", len(analysis.Skills), len(model.AllSkills()))
	}
	for _, sm := range analysis.Skills {
		want, ok := local.Mean(model.Skill(sm.Skill))
		if !ok {
			return fmt.Errorf("unexpected skill %q", sm.Skill)
		}
		if math.Abs(sm.Mean-want) > tolerance {
			return fmt.Errorf("%s mean %.4f, recomputed %.4f", sm.Skill, sm.Mean, want)
		}
	}
	return nil
}
