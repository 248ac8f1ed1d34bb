package engine

import (
	"regexp"
	"strings"

	"github.com/dockwise/dockwise/internal/models"
)

const baseBuildTimeSeconds = 30

var wordTokenRegex = regexp.MustCompile(`[\w.-]+`)

// EstimateBuildTime computes the before/after build-duration estimate in
// seconds from the raw build-file text.
func EstimateBuildTime(text string) models.TimeEstimate {
	return estimateBuildTime(text, Extract(text))
}

func estimateBuildTime(text string, f *Features) models.TimeEstimate {
	original := baseBuildTimeSeconds

	for _, cmd := range f.RunCommands {
		original += runCommandCost(cmd)
	}

	// Plain file copies.
	original += len(f.CopyCommands) * 5

	// ADD may download or extract on top of copying.
	for _, cmd := range f.AddCommands {
		switch {
		case strings.Contains(cmd, "http://") || strings.Contains(cmd, "https://"):
			original += 15
		case containsAny(cmd, ".tar", ".gz", ".zip"):
			original += 10
		default:
			original += 5
		}
	}

	var optimized int
	if f.MultiStage() {
		optimized = int(float64(original) * 0.6)
	} else {
		reduction := 0.0
		if !dependencyManifestFirst(f) {
			reduction += 0.15 // reordering for layer-cache hits
		}
		if !f.HasDockerignore {
			reduction += 0.1
		}
		if len(f.RunCommands) > 3 && !f.HasCombinedRuns {
			reduction += 0.15
		}
		if reduction > 0.2 {
			reduction = 0.2
		}
		optimized = int(float64(original) * (1 - reduction))
	}

	return models.TimeEstimate{
		OriginalSeconds:  original,
		OptimizedSeconds: optimized,
	}
}

// runCommandCost scores a single RUN command against the fixed keyword cost
// table. Costs are additive: a command matching several rules pays for all
// of them.
func runCommandCost(cmd string) int {
	lower := strings.ToLower(cmd)
	cost := 0

	if strings.Contains(lower, "apt-get update") {
		cost += 15
	}
	if strings.Contains(lower, "apt-get install") {
		cost += capInt(10+2*len(wordTokenRegex.FindAllString(lower, -1)), 60)
	}

	if strings.Contains(lower, "npm install") {
		if strings.Contains(lower, "--production") {
			cost += 40
		} else {
			cost += 90
		}
	}
	if strings.Contains(lower, "yarn install") {
		if strings.Contains(lower, "--production") || strings.Contains(lower, "--frozen-lockfile") {
			cost += 35
		} else {
			cost += 80
		}
	}
	if strings.Contains(lower, "pip install") {
		if strings.Contains(lower, "requirements.txt") {
			cost += 40
		} else {
			cost += capInt(15+3*len(wordTokenRegex.FindAllString(lower, -1)), 50)
		}
	}

	if containsAny(lower, "mysql", "postgres", "mongodb") {
		cost += 20
	}
	if containsAny(lower, "make", "cmake", "gcc", "build", "compile") {
		cost += 60
	}

	if strings.Contains(lower, "wget") || strings.Contains(lower, "curl") {
		cost += 15
	}
	if containsAny(lower, "tar", "unzip", "gunzip") {
		cost += 10
	}

	if strings.Contains(lower, "git clone") {
		cost += 25
		if !strings.Contains(lower, "depth=1") {
			cost += 15 // full-history clone
		}
	}

	return cost
}

// dependencyManifestFirst reports whether a dependency manifest
// (requirements.txt or package.json) is copied before the full-context
// "COPY . ." line. A manifest that is absent never counts as first; when
// the full-context copy is absent, a present manifest does.
func dependencyManifestFirst(f *Features) bool {
	return offsetBefore(f.RequirementsOffset, f.ContextCopyOffset) ||
		offsetBefore(f.PackageJSONOffset, f.ContextCopyOffset)
}

func offsetBefore(a, b int) bool {
	if a == -1 {
		return false
	}
	if b == -1 {
		return true
	}
	return a < b
}

func capInt(v, max int) int {
	if v > max {
		return max
	}
	return v
}
