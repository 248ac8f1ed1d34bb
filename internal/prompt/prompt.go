// Package prompt assembles AI optimization prompts from analysis reports.
// Provider selection is an explicit configuration value supplied by the
// caller; this package never reads the environment.
package prompt

import (
	"fmt"
	"strings"

	"github.com/dockwise/dockwise/internal/models"
)

// Provider identifies the AI backend the prompt payload targets.
type Provider string

const (
	ProviderGemini     Provider = "gemini"
	ProviderOpenAI     Provider = "openai"
	ProviderClaude     Provider = "claude"
	ProviderPerplexity Provider = "perplexity"
)

// bestPractices are the mandatory practices restated in every prompt.
var bestPractices = []string{
	"Use multi-stage builds to reduce final image size",
	"Create non-root user for security",
	"Avoid 'latest' tag for production images",
	"Optimize layer caching order",
	"Include .dockerignore file recommendations",
	"Suggest security scanning steps",
	"Clean package manager caches",
	"Properly manage exposed ports",
	"Add healthcheck configuration",
	"Include metadata labels",
}

// Payload is a prompt bound to its target provider.
type Payload struct {
	Provider Provider
	Prompt   string
}

// Build assembles the full optimization prompt from a computed report and
// the build-file text it was derived from.
func Build(report *models.Report, dockerfileText string, provider Provider) *Payload {
	return &Payload{
		Provider: provider,
		Prompt:   assemble(report, dockerfileText),
	}
}

func assemble(report *models.Report, dockerfileText string) string {
	var sb strings.Builder

	sb.WriteString(`You are a Docker expert. Analyze this Dockerfile following strict best practices:

**Mandatory Requirements:**
1. Enforce multi-stage builds when possible
2. Require non-root user configuration
3. Specify exact base image versions (no 'latest')
4. Optimize layer caching order
5. Include security scanning recommendations
6. Support both development and production environments with conditional statements

**Analysis Template:**
---
## 🔍 Comprehensive Analysis

### Security Issues
<list vulnerabilities with CVE references if possible>

### Performance Optimization
<layer-by-layer optimization opportunities>

### Best Practice Violations
<list violations with Docker documentation references>

### Environment Configuration
<identify environment-specific configurations and their impact>

---

## 🛠️ Optimization Plan

### Required Fixes
<critical security fixes>

### Recommended Improvements
<performance/best practice enhancements>

### Environment-Specific Optimizations
<development vs production specific optimizations>

---

## ✅ Optimized Dockerfile
<full Dockerfile code with comments supporting both dev and prod environments using ARG ENV>

---
`)

	sb.WriteString(metricsSection(report))
	sb.WriteString("---\n")
	sb.WriteString(environmentSection(report.Environment))
	sb.WriteString("---\n\n## 🔒 Security Checklist\n")
	for _, practice := range bestPractices {
		sb.WriteString(fmt.Sprintf("- [ ] %s\n", practice))
	}

	if report.Distroless != "" {
		sb.WriteString(fmt.Sprintf(`
## 🛡️ Advanced Security Recommendations

### Distroless Images
Consider using a distroless base image for production:
FROM %s
`, report.Distroless))
	}

	if len(report.Secrets) > 0 {
		sb.WriteString("\n## ⚠️ Potential Secrets Detected\n")
		for _, finding := range report.Secrets {
			sb.WriteString(fmt.Sprintf("- %s found at line %d\n", finding.Category, finding.Line))
		}
	}

	sb.WriteString(`
---

## 🚀 Validation Commands
# Development build
docker build --build-arg ENV=development -t myapp:dev .

# Production build
docker build --build-arg ENV=production -t myapp:prod .

# Scan production image
docker scan myapp:prod

# Compare image sizes
docker images myapp:dev myapp:prod

Dockerfile to analyze:
`)
	sb.WriteString(dockerfileText)

	return sb.String()
}

func metricsSection(report *models.Report) string {
	var sb strings.Builder
	sb.WriteString("\n## 📊 Metrics\n")
	sb.WriteString(fmt.Sprintf("- 🔄 Build Time Estimate:\n  Before: %ds | After: %ds (%d%% reduction)\n",
		report.Time.OriginalSeconds, report.Time.OptimizedSeconds, report.Time.ReductionPercent()))
	sb.WriteString(fmt.Sprintf("- 📦 Image Size Comparison:\n  Original: %s → Optimized: %s (%d%% smaller)\n",
		report.Size.OriginalHuman(), report.Size.OptimizedHuman(), report.Size.ReductionPercent()))
	sb.WriteString("- 🔒 Security Checklist:\n")
	for _, item := range report.Checklist {
		if item.Passed {
			sb.WriteString(fmt.Sprintf("  ✅ %s\n", item.Name))
		} else {
			sb.WriteString(fmt.Sprintf("  ❌ %s\n", item.Name))
		}
	}
	return sb.String()
}

func environmentSection(env *models.EnvironmentAnalysis) string {
	if env == nil {
		return ""
	}

	list := func(items []string) string {
		var sb strings.Builder
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("- %s\n", item))
		}
		return sb.String()
	}

	return fmt.Sprintf(`
## 🔀 Environment-Specific Differences

### Development Environment
Features:
%s
Recommendations:
%s
### Production Environment
Features:
%s
Recommendations:
%s`,
		list(env.Development.Features), list(env.Development.Recommendations),
		list(env.Production.Features), list(env.Production.Recommendations))
}
