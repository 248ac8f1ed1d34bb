package engine

import (
	"regexp"
	"strings"

	"github.com/dockwise/dockwise/internal/models"
)

// pipeInstallRegex matches curl output piped straight into a shell, with or
// without an intervening URL.
var pipeInstallRegex = regexp.MustCompile(`curl[^|\n]*\|\s*(ba)?sh`)

// Validate runs the hard precondition checks and the advisory warnings over
// the build-file text. All checks operate on the lowercased text. Critical
// issues make the file ineligible for further analysis; warnings do not.
func Validate(text string) *models.ValidationResult {
	lower := strings.ToLower(text)
	result := &models.ValidationResult{}

	if pipeInstallRegex.MatchString(lower) {
		result.Critical = append(result.Critical, "Insecure pipe installation detected")
	}
	if strings.Contains(lower, "root") && !strings.Contains(lower, "user ") {
		result.Critical = append(result.Critical, "Running as root user detected")
	}

	if strings.Contains(lower, "latest") {
		result.Warnings = append(result.Warnings, "Using 'latest' tag is not recommended for production")
	}
	if strings.Contains(lower, "apt-get upgrade") {
		result.Warnings = append(result.Warnings, "Avoid 'apt-get upgrade' without pinning versions")
	}
	if strings.Contains(lower, "apt-get") && !strings.Contains(lower, "--no-cache") {
		result.Warnings = append(result.Warnings, "Missing --no-cache in apt-get commands")
	}

	return result
}
