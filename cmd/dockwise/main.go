// Dockwise — a rule-based Dockerfile advisor that estimates image size and
// build time, assesses security posture, and synthesizes optimized templates.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dockwise/dockwise/internal/engine"
	"github.com/dockwise/dockwise/internal/models"
	"github.com/dockwise/dockwise/internal/policy"
	"github.com/dockwise/dockwise/internal/prompt"
	"github.com/dockwise/dockwise/internal/reporter"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	root := &cobra.Command{
		Use:     "dockwise",
		Short:   "Dockerfile advisor — estimate, assess, synthesize, enforce",
		Long:    `Dockwise analyzes Dockerfiles with a deterministic rule engine: size and build-time estimates, security checklist and benchmark assessment, secret and escape-risk scanning, and environment-aware template synthesis.`,
		Version: fmt.Sprintf("%s (%s)", version, commit),
	}

	root.AddCommand(
		newAnalyzeCmd(),
		newReportCmd(),
		newSynthCmd(),
		newPolicyCmd(),
		newPromptCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// analyzeFile reads and analyzes one Dockerfile. A validation failure is
// returned alongside the partial report so callers can still show it.
func analyzeFile(ctx context.Context, path string) (*models.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Dockerfile: %w", err)
	}

	report, err := engine.Analyze(ctx, string(data))
	if report != nil {
		report.Dockerfile = path
	}
	return report, err
}

// --- analyze command ---

func newAnalyzeCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "analyze [Dockerfile...]",
		Short: "Analyze one or more Dockerfiles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, json")
	return cmd
}

func runAnalyze(ctx context.Context, paths []string, format string) error {
	reports := make([]*models.Report, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			reports[i], errs[i] = analyzeFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := false
	for i, path := range paths {
		if len(paths) > 1 {
			color.New(color.Bold).Printf("=== %s ===\n\n", path)
		}
		if err := printReport(reports[i], errs[i], format); err != nil {
			return err
		}
		var vErr *models.ValidationError
		if errors.As(errs[i], &vErr) {
			failed = true
		} else if errs[i] != nil {
			return errs[i]
		}
	}

	if failed {
		os.Exit(1)
	}
	return nil
}

func printReport(report *models.Report, analyzeErr error, format string) error {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	var vErr *models.ValidationError
	if errors.As(analyzeErr, &vErr) {
		red.Println("❌ Critical issues found:")
		for _, issue := range vErr.Critical {
			red.Printf("  - %s\n", issue)
		}
		return nil
	}
	if analyzeErr != nil {
		return analyzeErr
	}

	if format == "json" {
		rep := reporter.New(".")
		output, err := rep.Generate(report, reporter.FormatJSON)
		if err != nil {
			return err
		}
		fmt.Println(output)
		return nil
	}

	// Text output
	if report.Validation != nil {
		for _, w := range report.Validation.Warnings {
			yellow.Printf("⚠ %s\n", w)
		}
		if len(report.Validation.Warnings) > 0 {
			fmt.Println()
		}
	}

	bold.Println("📊 Estimates")
	fmt.Printf("  Size:       %s → %s (-%d%%)\n",
		report.Size.OriginalHuman(), report.Size.OptimizedHuman(), report.Size.ReductionPercent())
	fmt.Printf("  Build time: %ds → %ds (-%d%%)\n\n",
		report.Time.OriginalSeconds, report.Time.OptimizedSeconds, report.Time.ReductionPercent())

	bold.Println("🔍 Security checklist")
	for _, item := range report.Checklist {
		if item.Passed {
			green.Printf("  ✔ %s\n", item.Name)
		} else {
			red.Printf("  ✘ %s\n", item.Name)
		}
	}
	fmt.Println()

	if report.Benchmark != nil {
		if score, ok := report.Benchmark.ComplianceScore(); ok {
			bold.Printf("📋 Compliance score: %d%% (%d passed, %d failed, %d skipped)\n\n",
				score, len(report.Benchmark.Passed), len(report.Benchmark.Failed), len(report.Benchmark.Skipped))
		}
		for _, item := range report.Benchmark.Failed {
			severityColor(item.Severity).Printf("  [%s] %s %s\n", item.Severity, item.ID, item.Title)
			fmt.Printf("         %s\n", item.Description)
		}
		if len(report.Benchmark.Failed) > 0 {
			fmt.Println()
		}
	}

	if len(report.Secrets) > 0 {
		red.Printf("🔐 %d potential secret(s):\n", len(report.Secrets))
		for _, finding := range report.Secrets {
			fmt.Printf("  - %s at line %d, column %d\n", finding.Category, finding.Line, finding.Column)
		}
		fmt.Println()
	}

	for _, risk := range report.EscapeRisks {
		severityColor(risk.Severity).Printf("  [%s] %s\n", risk.Severity, risk.Title)
		fmt.Printf("         %s\n", risk.Recommendation)
	}
	if len(report.EscapeRisks) > 0 {
		fmt.Println()
	}

	if report.Distroless != "" {
		green.Printf("💡 Distroless alternative: %s\n", report.Distroless)
	}

	return nil
}

func severityColor(s models.Severity) *color.Color {
	switch s {
	case models.SeverityCritical:
		return color.New(color.FgRed)
	case models.SeverityHigh:
		return color.New(color.FgHiRed)
	case models.SeverityMedium:
		return color.New(color.FgYellow)
	case models.SeverityLow:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgWhite)
	}
}

// --- report command ---

func newReportCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "report [Dockerfile]",
		Short: "Generate markdown, security, and JSON reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), args[0], outputDir)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "reports", "Output directory for reports")
	return cmd
}

func runReport(ctx context.Context, path, outputDir string) error {
	bold := color.New(color.Bold)
	bold.Println("📝 Generating reports for:", path)

	report, err := analyzeFile(ctx, path)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			return fmt.Errorf("dockerfile failed validation: %s", strings.Join(vErr.Critical, "; "))
		}
		return err
	}

	rep := reporter.New(outputDir)
	if err := rep.GenerateAll(report); err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	color.New(color.FgGreen).Printf("✅ Reports written to: %s/\n", outputDir)
	return nil
}

// --- synth command ---

func newSynthCmd() *cobra.Command {
	var (
		base            string
		outputFile      string
		withIgnore      bool
		withHealthcheck bool
	)

	cmd := &cobra.Command{
		Use:   "synth [Dockerfile]",
		Short: "Synthesize an environment-aware optimized Dockerfile template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynth(args[0], base, outputFile, withIgnore, withHealthcheck)
		},
	}

	cmd.Flags().StringVarP(&base, "base", "b", "original", "Base image preference: alpine, slim, full, original")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&withIgnore, "dockerignore", false, "Also write a default .dockerignore next to the output")
	cmd.Flags().BoolVar(&withHealthcheck, "inject-healthcheck", false, "Inject a healthcheck into the original file instead of synthesizing")
	return cmd
}

func runSynth(path, base, outputFile string, withIgnore, withHealthcheck bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read Dockerfile: %w", err)
	}
	text := string(data)

	var output string
	if withHealthcheck {
		output = engine.InjectHealthcheck(text)
	} else {
		output = engine.SynthesizeTemplate(text, models.ParseBasePreference(base))
	}

	if outputFile == "" {
		fmt.Print(output)
	} else {
		if err := os.WriteFile(outputFile, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		color.New(color.FgGreen).Printf("✅ Written to: %s\n", outputFile)
	}

	if withIgnore {
		dir := filepath.Dir(path)
		if outputFile != "" {
			dir = filepath.Dir(outputFile)
		}
		ignorePath := filepath.Join(dir, ".dockerignore")
		content := strings.Join(engine.DefaultDockerignore(), "\n")
		if err := os.WriteFile(ignorePath, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write .dockerignore: %w", err)
		}
		color.New(color.FgGreen).Printf("✅ Generated .dockerignore at %s\n", ignorePath)
	}

	return nil
}

// --- policy command ---

func newPolicyCmd() *cobra.Command {
	var policyFile string

	cmd := &cobra.Command{
		Use:   "policy [Dockerfile]",
		Short: "Check a Dockerfile analysis against policy rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPolicy(cmd.Context(), args[0], policyFile)
		},
	}

	cmd.Flags().StringVarP(&policyFile, "policy", "p", "", "Path to policy YAML file")
	return cmd
}

func runPolicy(ctx context.Context, path, policyFile string) error {
	bold := color.New(color.Bold)
	bold.Println("📋 Evaluating policy for:", path)
	fmt.Println()

	var config *policy.Config
	if policyFile != "" {
		var err error
		config, err = policy.LoadConfig(policyFile)
		if err != nil {
			return fmt.Errorf("failed to load policy: %w", err)
		}
	} else {
		config = policy.DefaultConfig()
	}

	report, err := analyzeFile(ctx, path)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			color.New(color.FgRed).Println("❌ Dockerfile failed validation:")
			for _, issue := range vErr.Critical {
				fmt.Printf("  - %s\n", issue)
			}
			os.Exit(1)
		}
		return err
	}

	enforcer := policy.NewEnforcer(config)
	policyResult := enforcer.Evaluate(report)

	fmt.Println(policy.FormatPolicyStatus(policyResult))

	if !policyResult.Passed {
		os.Exit(1)
	}

	return nil
}

// --- prompt command ---

func newPromptCmd() *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "prompt [Dockerfile]",
		Short: "Assemble an AI optimization prompt from the analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompt(cmd.Context(), args[0], provider)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "gemini", "Target provider: gemini, openai, claude, perplexity")
	return cmd
}

func runPrompt(ctx context.Context, path, provider string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read Dockerfile: %w", err)
	}

	report, err := engine.Analyze(ctx, string(data))
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			return fmt.Errorf("dockerfile failed validation: %s", strings.Join(vErr.Critical, "; "))
		}
		return err
	}

	payload := prompt.Build(report, string(data), prompt.Provider(provider))
	fmt.Println(payload.Prompt)
	return nil
}
