package engine

import (
	"fmt"
	"strings"

	"github.com/dockwise/dockwise/internal/models"
)

// sensitiveMounts are host paths that break isolation when bind-mounted.
var sensitiveMounts = []string{
	"/proc",
	"/sys",
	"/var/run/docker.sock",
	"docker.sock",
	"/dev",
	"/var",
	"/etc",
}

// dangerousCaps grant kernel-level access useful for breaking out.
var dangerousCaps = []string{"CAP_SYS_ADMIN", "CAP_NET_ADMIN", "CAP_SYS_PTRACE"}

// AnalyzeEscapeRisks flags container-escape risks referenced in the build
// file, such as privileged mode, sensitive host mounts, dangerous
// capabilities, and host networking. Checks are case-sensitive substring
// matches on the raw text.
func AnalyzeEscapeRisks(text string) []models.EscapeRisk {
	var risks []models.EscapeRisk

	if strings.Contains(text, "--privileged") {
		risks = append(risks, models.EscapeRisk{
			Severity:       models.SeverityCritical,
			Title:          "Container running in privileged mode",
			Description:    "Privileged containers can escape isolation and access host resources.",
			Recommendation: "Remove --privileged flag. Use more specific capabilities if needed.",
		})
	}

	for _, mount := range sensitiveMounts {
		if strings.Contains(text, "-v "+mount) || strings.Contains(text, "--volume "+mount) {
			risks = append(risks, models.EscapeRisk{
				Severity:       models.SeverityHigh,
				Title:          fmt.Sprintf("Mounting sensitive host path %s", mount),
				Description:    "Mounting sensitive host paths can lead to container escapes.",
				Recommendation: fmt.Sprintf("Avoid mounting %s. Use more restricted volumes.", mount),
			})
		}
	}

	for _, cap := range dangerousCaps {
		if strings.Contains(text, "--cap-add="+cap) || strings.Contains(text, "--cap-add "+cap) {
			risks = append(risks, models.EscapeRisk{
				Severity:       models.SeverityHigh,
				Title:          fmt.Sprintf("Adding dangerous capability %s", cap),
				Description:    "This capability could be used to escape the container.",
				Recommendation: fmt.Sprintf("Remove %s capability. Use more specific permissions.", cap),
			})
		}
	}

	if strings.Contains(text, "--network=host") || strings.Contains(text, "--net=host") {
		risks = append(risks, models.EscapeRisk{
			Severity:       models.SeverityMedium,
			Title:          "Using host network mode",
			Description:    "Host network mode bypasses container network isolation.",
			Recommendation: "Use the default bridge network or create a custom network.",
		})
	}

	return risks
}
