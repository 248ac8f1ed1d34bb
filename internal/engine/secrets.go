package engine

import (
	"regexp"
	"strings"

	"github.com/dockwise/dockwise/internal/models"
)

// secretPattern pairs a detection regex with the category reported for it.
// The matched value is never surfaced, only its category and position.
type secretPattern struct {
	re       *regexp.Regexp
	category string
}

var secretPatterns = []secretPattern{
	{regexp.MustCompile(`(?i)password\s*=\s*['"][^'"]+['"]`), "Password"},
	{regexp.MustCompile(`(?i)passwd\s*=\s*['"][^'"]+['"]`), "Password"},
	{regexp.MustCompile(`(?i)pwd\s*=\s*['"][^'"]+['"]`), "Password"},
	{regexp.MustCompile(`(?i)secret\s*=\s*['"][^'"]+['"]`), "Secret"},
	{regexp.MustCompile(`(?i)token\s*=\s*['"][^'"]+['"]`), "Token"},
	{regexp.MustCompile(`(?i)api[-_]?key\s*=\s*['"][^'"]+['"]`), "API Key"},
	{regexp.MustCompile(`(?i)auth[-_]?token\s*=\s*['"][^'"]+['"]`), "Auth Token"},
	{regexp.MustCompile(`(?i)credentials\s*=\s*['"][^'"]+['"]`), "Credentials"},
	{regexp.MustCompile(`(?i)aws[-_]?access[-_]?key[-_]?id\s*=\s*['"][^'"]+['"]`), "AWS Access Key"},
	{regexp.MustCompile(`(?i)aws[-_]?secret[-_]?access[-_]?key\s*=\s*['"][^'"]+['"]`), "AWS Secret Key"},
	{regexp.MustCompile(`(?i)jdbc:.*password=\w+`), "Database Connection String"},
	{regexp.MustCompile(`(?i)mongodb://[^:]+:[^@]+@`), "MongoDB Connection String"},
	{regexp.MustCompile(`(?i)base64:[a-zA-Z0-9+/]{30,}`), "Base64 Encoded Value"},
}

// ScanSecrets reports potential hardcoded secrets with 1-based line and
// column positions. Patterns are scanned in declaration order, so one value
// may be reported under more than one category.
func ScanSecrets(text string) []models.SecretFinding {
	var findings []models.SecretFinding
	for _, p := range secretPatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			start := loc[0]
			findings = append(findings, models.SecretFinding{
				Line:     strings.Count(text[:start], "\n") + 1,
				Column:   start - strings.LastIndex(text[:start], "\n"),
				Category: p.category,
			})
		}
	}
	return findings
}
