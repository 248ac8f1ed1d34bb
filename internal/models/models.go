// Package models defines shared types used across all dockwise components.
package models

import "fmt"

// Severity represents the severity level of a finding or benchmark item.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// BasePreference selects the base-image style used by the template synthesizer.
type BasePreference string

const (
	PreferAlpine   BasePreference = "alpine"
	PreferSlim     BasePreference = "slim"
	PreferFull     BasePreference = "full"
	PreferOriginal BasePreference = "original"
)

// ParseBasePreference maps a user-supplied string to a BasePreference,
// falling back to PreferOriginal for unrecognized values.
func ParseBasePreference(s string) BasePreference {
	switch BasePreference(s) {
	case PreferAlpine, PreferSlim, PreferFull, PreferOriginal:
		return BasePreference(s)
	default:
		return PreferOriginal
	}
}

// ValidationError is returned when a Dockerfile fails the hard precondition
// checks. It carries every critical issue found, not just the first.
type ValidationError struct {
	Critical []string `json:"critical"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dockerfile validation failed: %d critical issue(s)", len(e.Critical))
}

// ValidationResult holds the outcome of the precondition validation pass.
// Warnings are advisory and never abort analysis.
type ValidationResult struct {
	Critical []string `json:"critical,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Valid reports whether analysis may proceed.
func (v *ValidationResult) Valid() bool { return len(v.Critical) == 0 }

// SizeEstimate holds the before/after image size estimate in GB.
type SizeEstimate struct {
	OriginalGB  float64 `json:"original_gb"`
	OptimizedGB float64 `json:"optimized_gb"`
}

// ReductionPercent returns the estimated size reduction as a whole percent.
// A zero original size yields 0 rather than dividing by zero.
func (s SizeEstimate) ReductionPercent() int {
	if s.OriginalGB == 0 {
		return 0
	}
	return int((1 - s.OptimizedGB/s.OriginalGB) * 100)
}

// OriginalHuman formats the original size in GB.
func (s SizeEstimate) OriginalHuman() string {
	return fmt.Sprintf("%.1fGB", s.OriginalGB)
}

// OptimizedHuman formats the optimized size, reporting megabytes below
// 1.0 GB for readability and gigabytes otherwise.
func (s SizeEstimate) OptimizedHuman() string {
	if s.OptimizedGB < 1.0 {
		return fmt.Sprintf("%dMB", int(s.OptimizedGB*1000))
	}
	return fmt.Sprintf("%.1fGB", s.OptimizedGB)
}

// TimeEstimate holds the before/after build duration estimate in seconds.
type TimeEstimate struct {
	OriginalSeconds  int `json:"original_seconds"`
	OptimizedSeconds int `json:"optimized_seconds"`
}

// ReductionPercent returns the estimated build-time reduction as a whole
// percent. A zero original time yields 0 rather than dividing by zero.
func (t TimeEstimate) ReductionPercent() int {
	if t.OriginalSeconds == 0 {
		return 0
	}
	return int((1 - float64(t.OptimizedSeconds)/float64(t.OriginalSeconds)) * 100)
}

// ChecklistItem is one boolean security check with a fixed display name.
type ChecklistItem struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// SecurityChecklist is the fixed, ordered battery of boolean security checks.
type SecurityChecklist []ChecklistItem

// BenchmarkItem is one rule of the compliance benchmark.
type BenchmarkItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// BenchmarkAssessment groups the benchmark items by outcome. Every evaluated
// item lands in exactly one of the three lists.
type BenchmarkAssessment struct {
	Passed  []BenchmarkItem `json:"passed"`
	Failed  []BenchmarkItem `json:"failed"`
	Skipped []BenchmarkItem `json:"skipped"`
}

// ComplianceScore returns the percentage of evaluated items that passed.
// Skipped items are excluded from the denominator. ok is false when nothing
// was evaluated (passed+failed == 0), in which case no score exists.
func (a *BenchmarkAssessment) ComplianceScore() (score int, ok bool) {
	total := len(a.Passed) + len(a.Failed)
	if total == 0 {
		return 0, false
	}
	return int(float64(len(a.Passed))/float64(total)*100 + 0.5), true
}

// PolicyRule represents a single evaluated policy rule.
type PolicyRule struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Value       interface{} `json:"value"`
	Passed      bool        `json:"passed"`
	Message     string      `json:"message,omitempty"`
}

// PolicyResult holds the output of the policy enforcer.
type PolicyResult struct {
	Passed bool         `json:"passed"`
	Rules  []PolicyRule `json:"rules"`
}

// SecretFinding locates a potential hardcoded secret. The secret value itself
// is never captured, only its classified category and position.
type SecretFinding struct {
	Line     int    `json:"line"`   // 1-based
	Column   int    `json:"column"` // 1-based, relative to line start
	Category string `json:"category"`
}

// EscapeRisk describes a container-escape risk detected in the build file.
type EscapeRisk struct {
	Severity       Severity `json:"severity"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
}

// EnvironmentProfile collects detected features and recommendations for one
// environment (development or production).
type EnvironmentProfile struct {
	Features        []string `json:"features"`
	Recommendations []string `json:"recommendations"`
}

// EnvironmentAnalysis compares development and production signals derived
// from the same build file.
type EnvironmentAnalysis struct {
	Development EnvironmentProfile `json:"development"`
	Production  EnvironmentProfile `json:"production"`
}

// Report is the aggregate output of a full analysis run.
type Report struct {
	Dockerfile  string               `json:"dockerfile,omitempty"`
	Validation  *ValidationResult    `json:"validation,omitempty"`
	Size        SizeEstimate         `json:"size"`
	Time        TimeEstimate         `json:"time"`
	Checklist   SecurityChecklist    `json:"checklist"`
	Benchmark   *BenchmarkAssessment `json:"benchmark"`
	Secrets     []SecretFinding      `json:"secrets,omitempty"`
	EscapeRisks []EscapeRisk         `json:"escape_risks,omitempty"`
	Environment *EnvironmentAnalysis `json:"environment"`
	Distroless  string               `json:"distroless_suggestion,omitempty"`
}
