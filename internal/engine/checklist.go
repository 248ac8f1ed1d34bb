package engine

import (
	"strings"

	"github.com/dockwise/dockwise/internal/models"
)

// BuildChecklist evaluates the fixed battery of boolean security checks
// against the build-file text. The item order and display names are stable
// so reports stay diffable across runs.
func BuildChecklist(text string) models.SecurityChecklist {
	lower := strings.ToLower(text)

	return models.SecurityChecklist{
		{
			Name:   "Non-root user configured",
			Passed: strings.Contains(lower, "user "),
		},
		{
			Name:   "Specific version tags (no 'latest')",
			Passed: !strings.Contains(lower, "latest"),
		},
		{
			// Passing means the pattern is absent.
			Name:   "Curl piped to shell",
			Passed: !(strings.Contains(lower, "curl") && strings.Contains(lower, " | ")),
		},
		{
			Name: "Package cache cleanup",
			Passed: containsAny(lower,
				"rm -rf /var/cache", "apt-get clean", "npm cache clean", "pip cache purge"),
		},
		{
			Name:   "Exposed ports properly managed",
			Passed: strings.Contains(lower, "expose"),
		},
		{
			Name:   "Healthcheck configured",
			Passed: strings.Contains(lower, "healthcheck"),
		},
		{
			Name:   "Multi-stage build",
			Passed: usesMultiStage(text, lower),
		},
	}
}

// usesMultiStage is the checklist's own multi-stage detector. It accepts a
// wider set of markers than Features.MultiStage so that documentation-style
// mentions ("multi-stage") also count.
func usesMultiStage(text, lower string) bool {
	return containsAny(lower, "as builder", "as build", "--from=", "multi-stage") ||
		strings.Count(text, "\nFROM ") > 1
}
