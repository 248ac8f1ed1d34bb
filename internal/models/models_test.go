package models

import "testing"

func TestSizeEstimate_OptimizedHuman(t *testing.T) {
	tests := []struct {
		gb       float64
		expected string
	}{
		{0.4, "400MB"},
		{0.9, "900MB"},
		{1.0, "1.0GB"},
		{2.2, "2.2GB"},
	}
	for _, tt := range tests {
		est := SizeEstimate{OptimizedGB: tt.gb}
		if got := est.OptimizedHuman(); got != tt.expected {
			t.Errorf("OptimizedHuman(%v) = %q, want %q", tt.gb, got, tt.expected)
		}
	}
}

func TestSizeEstimate_ReductionPercentZeroOriginal(t *testing.T) {
	est := SizeEstimate{OriginalGB: 0, OptimizedGB: 0}
	if got := est.ReductionPercent(); got != 0 {
		t.Errorf("expected 0 for zero original, got %d", got)
	}
}

func TestTimeEstimate_ReductionPercent(t *testing.T) {
	est := TimeEstimate{OriginalSeconds: 100, OptimizedSeconds: 60}
	if got := est.ReductionPercent(); got != 40 {
		t.Errorf("expected 40, got %d", got)
	}

	zero := TimeEstimate{}
	if got := zero.ReductionPercent(); got != 0 {
		t.Errorf("expected 0 for zero original, got %d", got)
	}
}

func TestBenchmarkAssessment_ComplianceScore(t *testing.T) {
	a := &BenchmarkAssessment{
		Passed:  []BenchmarkItem{{ID: "4.1"}, {ID: "4.3"}},
		Failed:  []BenchmarkItem{{ID: "4.6"}},
		Skipped: []BenchmarkItem{{ID: "4.5"}, {ID: "4.8"}},
	}

	score, ok := a.ComplianceScore()
	if !ok {
		t.Fatal("expected a score")
	}
	// Skipped items are excluded: 2 of 3 evaluated, rounded.
	if score != 67 {
		t.Errorf("expected 67, got %d", score)
	}
}

func TestBenchmarkAssessment_NoScoreWhenAllSkipped(t *testing.T) {
	a := &BenchmarkAssessment{Skipped: []BenchmarkItem{{ID: "4.5"}}}
	if _, ok := a.ComplianceScore(); ok {
		t.Error("expected no score when nothing passed or failed")
	}
}

func TestParseBasePreference(t *testing.T) {
	if got := ParseBasePreference("alpine"); got != PreferAlpine {
		t.Errorf("expected alpine, got %s", got)
	}
	if got := ParseBasePreference("bogus"); got != PreferOriginal {
		t.Errorf("expected fallback to original, got %s", got)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Critical: []string{"a", "b"}}
	if err.Error() != "dockerfile validation failed: 2 critical issue(s)" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
