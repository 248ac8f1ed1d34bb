package engine

import (
	"strings"

	"github.com/dockwise/dockwise/internal/models"
)

// benchmarkOutcome is the tri-state result of one benchmark rule.
type benchmarkOutcome int

const (
	outcomePassed benchmarkOutcome = iota
	outcomeFailed
	outcomeSkipped
)

// benchmarkRule is one entry in the canonical compliance table. Evaluation is
// a pure predicate over the raw text; checks are case-sensitive unless the
// rule lowercases internally. The description depends on the outcome so that
// failed items read as remediation advice.
type benchmarkRule struct {
	id       string
	title    string
	severity models.Severity
	eval     func(text string) (benchmarkOutcome, string)
}

var trustedRegistries = []string{
	"docker.io",
	"gcr.io",
	"quay.io",
	"mcr.microsoft.com",
	"registry.access.redhat.com",
}

var secretHintWords = []string{"password", "secret", "key", "token", "auth", "cred"}

var benchmarkRules = []benchmarkRule{
	{
		id: "4.1", title: "Create a user for the container", severity: models.SeverityHigh,
		eval: func(text string) (benchmarkOutcome, string) {
			if strings.Contains(text, "USER ") && !strings.Contains(text, "USER root") {
				return outcomePassed, "Running containers with a non-root user can prevent privilege escalation attacks."
			}
			return outcomeFailed, "Create a non-root user and use the USER instruction to switch to it."
		},
	},
	{
		id: "4.2", title: "Use trusted base images", severity: models.SeverityMedium,
		eval: func(text string) (benchmarkOutcome, string) {
			if containsAny(text, trustedRegistries...) {
				return outcomePassed, "Using official or trusted base images reduces security risks."
			}
			return outcomeSkipped, "Verify that base images come from trusted sources."
		},
	},
	{
		id: "4.3", title: "Do not install unnecessary packages", severity: models.SeverityMedium,
		eval: func(text string) (benchmarkOutcome, string) {
			if strings.Contains(text, "apk --no-cache") ||
				strings.Contains(text, "apt-get --no-install-recommends") {
				return outcomePassed, "Minimizing installed packages reduces attack surface."
			}
			return outcomeFailed, "Use --no-install-recommends for apt or --no-cache for apk."
		},
	},
	{
		id: "4.4", title: "Scan and rebuild images", severity: models.SeverityHigh,
		eval: func(text string) (benchmarkOutcome, string) {
			if !strings.Contains(text, "latest") {
				return outcomePassed, "Using specific versions helps ensure regular rebuilds with security patches."
			}
			return outcomeFailed, "Use specific version tags and implement regular scanning."
		},
	},
	{
		id: "4.5", title: "Enable content trust for Docker", severity: models.SeverityMedium,
		eval: func(string) (benchmarkOutcome, string) {
			// Not observable from the build file alone.
			return outcomeSkipped, "Cannot verify from Dockerfile. Set DOCKER_CONTENT_TRUST=1 in build environment."
		},
	},
	{
		id: "4.6", title: "Add HEALTHCHECK instruction", severity: models.SeverityMedium,
		eval: func(text string) (benchmarkOutcome, string) {
			if strings.Contains(text, "HEALTHCHECK") {
				return outcomePassed, "Healthchecks help ensure container health and proper functioning."
			}
			return outcomeFailed, "Add a HEALTHCHECK instruction to detect application failures."
		},
	},
	{
		id: "4.7", title: "Do not use update instructions alone", severity: models.SeverityLow,
		eval: func(text string) (benchmarkOutcome, string) {
			if strings.Contains(text, "apt-get update") && !strings.Contains(text, "apt-get update &&") {
				return outcomeFailed, "Combine update and install in single RUN instruction."
			}
			return outcomePassed, "Updates and installs appear to be combined properly."
		},
	},
	{
		id: "4.8", title: "Remove setuid and setgid permissions", severity: models.SeverityHigh,
		eval: func(text string) (benchmarkOutcome, string) {
			if strings.Contains(text, "chmod -R") && strings.Contains(text, "find / -perm") {
				return outcomePassed, "Removing unnecessary setuid binaries reduces privilege escalation risks."
			}
			return outcomeSkipped, "Consider removing setuid/setgid from binaries not required by app."
		},
	},
	{
		id: "4.9", title: "Use COPY instead of ADD", severity: models.SeverityLow,
		eval: func(text string) (benchmarkOutcome, string) {
			if strings.Contains(text, "ADD") {
				return outcomeFailed, "COPY is more transparent than ADD and should be preferred."
			}
			return outcomePassed, "COPY is being used properly instead of ADD."
		},
	},
	{
		id: "4.10", title: "Do not store secrets in Dockerfiles", severity: models.SeverityCritical,
		eval: func(text string) (benchmarkOutcome, string) {
			if containsAny(strings.ToLower(text), secretHintWords...) {
				return outcomeFailed, "Potential secrets found. Use build args, environment variables, or secret management."
			}
			return outcomePassed, "No obvious secrets detected in Dockerfile."
		},
	},
	{
		id: "4.11", title: "Install verified packages", severity: models.SeverityMedium,
		eval: func(text string) (benchmarkOutcome, string) {
			if strings.Contains(text, "apt-get install") && !strings.Contains(text, "--allow-unauthenticated") {
				return outcomePassed, "Package authenticity appears to be verified during installation."
			}
			return outcomeSkipped, "Ensure packages are verified (avoid --allow-unauthenticated)."
		},
	},
}

// AssessBenchmark evaluates every rule of the compliance table against the
// build-file text. Items appear in rule order within each outcome list.
func AssessBenchmark(text string) *models.BenchmarkAssessment {
	assessment := &models.BenchmarkAssessment{}
	for _, rule := range benchmarkRules {
		outcome, desc := rule.eval(text)
		item := models.BenchmarkItem{
			ID:          rule.id,
			Title:       rule.title,
			Description: desc,
			Severity:    rule.severity,
		}
		switch outcome {
		case outcomePassed:
			assessment.Passed = append(assessment.Passed, item)
		case outcomeFailed:
			assessment.Failed = append(assessment.Failed, item)
		default:
			assessment.Skipped = append(assessment.Skipped, item)
		}
	}
	return assessment
}
