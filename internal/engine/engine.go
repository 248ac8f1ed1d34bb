package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dockwise/dockwise/internal/models"
)

// Analyze runs the full analysis pipeline over one build file. Validation
// runs first; a critical validation issue aborts with a
// *models.ValidationError and a report carrying only the validation section.
// The remaining assessors are independent of each other and run in parallel,
// each writing its own report field.
func Analyze(ctx context.Context, text string) (*models.Report, error) {
	report := &models.Report{Validation: Validate(text)}
	if !report.Validation.Valid() {
		return report, &models.ValidationError{Critical: report.Validation.Critical}
	}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		report.Size = EstimateSize(text)
		return nil
	})
	g.Go(func() error {
		report.Time = EstimateBuildTime(text)
		return nil
	})
	g.Go(func() error {
		report.Checklist = BuildChecklist(text)
		return nil
	})
	g.Go(func() error {
		report.Benchmark = AssessBenchmark(text)
		return nil
	})
	g.Go(func() error {
		report.Secrets = ScanSecrets(text)
		return nil
	})
	g.Go(func() error {
		report.EscapeRisks = AnalyzeEscapeRisks(text)
		return nil
	})
	g.Go(func() error {
		report.Environment = AnalyzeEnvironments(text)
		return nil
	})
	g.Go(func() error {
		report.Distroless = SuggestDistroless(Extract(text).BaseImage)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}
