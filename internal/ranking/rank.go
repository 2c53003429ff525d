package ranking

import (
	"context"
	"sort"

	"github.com/jonathan/fit-scorer/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the batch parallelism used when none is configured.
const DefaultWorkers = 4

// Assessor scores one applicant against one job.
type Assessor interface {
	Assess(applicant types.ApplicantRecord, job types.JobRecord) types.FitAssessment
}

// RankOptions controls batch ranking.
type RankOptions struct {
	Workers  int
	MinScore int
}

// RankApplicants scores every entry against job on up to opts.Workers goroutines and
// returns them sorted by fit score, descending. Ties keep input order. Entries below
// opts.MinScore are dropped after scoring. Only context cancellation produces an error.
func RankApplicants(ctx context.Context, a Assessor, job types.JobRecord, entries []types.ApplicantEntry, opts RankOptions) (*types.RankedApplicants, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	assessments := make([]types.FitAssessment, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			assessments[i] = a.Assess(entries[i].Applicant, job)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := make([]types.RankedApplicant, 0, len(entries))
	for i, entry := range entries {
		if assessments[i].FitScore < opts.MinScore {
			continue
		}
		ranked = append(ranked, types.RankedApplicant{
			ApplicantID: entry.ID,
			Assessment:  assessments[i],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Assessment.FitScore > ranked[j].Assessment.FitScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return &types.RankedApplicants{JobTitle: job.Title, Ranked: ranked}, nil
}
