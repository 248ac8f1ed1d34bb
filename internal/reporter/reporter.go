// Package reporter generates formatted reports from analysis results.
package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dockwise/dockwise/internal/models"
)

// Format represents the output format of a report.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Reporter generates reports in various formats.
type Reporter struct {
	outputDir string
}

// New creates a new Reporter.
func New(outputDir string) *Reporter {
	return &Reporter{outputDir: outputDir}
}

// Generate creates a report in the specified format.
func (r *Reporter) Generate(report *models.Report, format Format) (string, error) {
	switch format {
	case FormatMarkdown:
		return r.generateMarkdown(report), nil
	case FormatJSON:
		return r.generateJSON(report)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteReport writes the report to a file.
func (r *Reporter) WriteReport(content string, filename string) error {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(r.outputDir, filename)
	return os.WriteFile(path, []byte(content), 0o644)
}

// GenerateAll generates the markdown summary, the security assessment, and
// the JSON report.
func (r *Reporter) GenerateAll(report *models.Report) error {
	md := r.generateMarkdown(report)
	if err := r.WriteReport(md, "report.md"); err != nil {
		return err
	}

	if err := r.WriteReport(SecurityReport(report), "security.md"); err != nil {
		return err
	}

	jsonReport, err := r.generateJSON(report)
	if err != nil {
		return fmt.Errorf("JSON report failed: %w", err)
	}
	if err := r.WriteReport(jsonReport, "report.json"); err != nil {
		return err
	}

	return nil
}

// --- Markdown summary ---

func (r *Reporter) generateMarkdown(report *models.Report) string {
	var sb strings.Builder

	sb.WriteString("# 🐳 Dockerfile Analysis Report\n\n")
	sb.WriteString(fmt.Sprintf("**Generated:** %s  \n", time.Now().Format(time.RFC1123)))
	if report.Dockerfile != "" {
		sb.WriteString(fmt.Sprintf("**Dockerfile:** `%s`\n", report.Dockerfile))
	}
	sb.WriteString("\n---\n\n")

	// Validation
	if report.Validation != nil && len(report.Validation.Warnings) > 0 {
		sb.WriteString("## ⚠️ Warnings\n\n")
		for _, w := range report.Validation.Warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
		sb.WriteString("\n")
	}

	// Estimates
	sb.WriteString("## 📊 Estimates\n\n")
	sb.WriteString("| Metric | Original | Optimized | Change |\n")
	sb.WriteString("|--------|----------|-----------|--------|\n")
	sb.WriteString(fmt.Sprintf("| Size | %s | %s | **-%d%%** |\n",
		report.Size.OriginalHuman(), report.Size.OptimizedHuman(), report.Size.ReductionPercent()))
	sb.WriteString(fmt.Sprintf("| Build time | %ds | %ds | **-%d%%** |\n\n",
		report.Time.OriginalSeconds, report.Time.OptimizedSeconds, report.Time.ReductionPercent()))

	// Checklist
	sb.WriteString("## 🔍 Security Checklist\n\n")
	for _, item := range report.Checklist {
		icon := "❌"
		if item.Passed {
			icon = "✅"
		}
		sb.WriteString(fmt.Sprintf("- %s %s\n", icon, item.Name))
	}
	sb.WriteString("\n")

	// Compliance score
	if report.Benchmark != nil {
		if score, ok := report.Benchmark.ComplianceScore(); ok {
			sb.WriteString(fmt.Sprintf("**Compliance score:** %d%%\n\n", score))
		}
	}

	// Secrets
	if len(report.Secrets) > 0 {
		sb.WriteString("## 🔐 Potential Secrets\n\n")
		for _, finding := range report.Secrets {
			sb.WriteString(fmt.Sprintf("- %s found at line %d, column %d\n",
				finding.Category, finding.Line, finding.Column))
		}
		sb.WriteString("\n")
	}

	// Environments
	if report.Environment != nil {
		sb.WriteString("## 🌍 Environment Analysis\n\n")
		sb.WriteString("### Development\n\n")
		writeProfile(&sb, report.Environment.Development)
		sb.WriteString("### Production\n\n")
		writeProfile(&sb, report.Environment.Production)
	}

	// Distroless suggestion
	if report.Distroless != "" {
		sb.WriteString("## 🏗️ Distroless Alternative\n\n")
		sb.WriteString(fmt.Sprintf("Consider `%s` as a production base image.\n\n", report.Distroless))
	}

	sb.WriteString("---\n")

	return sb.String()
}

func writeProfile(sb *strings.Builder, profile models.EnvironmentProfile) {
	for _, f := range profile.Features {
		sb.WriteString(fmt.Sprintf("- ✔ %s\n", f))
	}
	for _, rec := range profile.Recommendations {
		sb.WriteString(fmt.Sprintf("- 💡 %s\n", rec))
	}
	sb.WriteString("\n")
}

func severityIcon(s models.Severity) string {
	switch s {
	case models.SeverityCritical:
		return "🔴"
	case models.SeverityHigh:
		return "🟠"
	case models.SeverityMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

// --- Security assessment ---

// SecurityReport renders the markdown security assessment: score, escape
// risks, benchmark outcomes, remediation examples for failed items, and an
// implementation timeline bucketed by severity.
func SecurityReport(report *models.Report) string {
	var sb strings.Builder

	sb.WriteString("# 🛡️ Dockerfile Security Assessment Report\n\n")

	if report.Benchmark != nil {
		if score, ok := report.Benchmark.ComplianceScore(); ok {
			scoreIcon := "🔴"
			if score >= 80 {
				scoreIcon = "🟢"
			} else if score >= 60 {
				scoreIcon = "🟡"
			}
			sb.WriteString(fmt.Sprintf("### Security Score: %s %d%%\n\n", scoreIcon, score))
		}
	}

	sb.WriteString("### Container Escape Risks\n\n")
	if len(report.EscapeRisks) > 0 {
		for _, risk := range report.EscapeRisks {
			sb.WriteString(fmt.Sprintf("- **%s:** %s\n", strings.ToUpper(string(risk.Severity)), risk.Title))
			sb.WriteString(fmt.Sprintf("  - %s\n", risk.Description))
			sb.WriteString(fmt.Sprintf("  - **Recommendation:** %s\n\n", risk.Recommendation))
		}
	} else {
		sb.WriteString("✅ No immediate container escape risks detected.\n\n")
	}

	if report.Benchmark != nil {
		sb.WriteString("### CIS Docker Benchmark Assessment\n\n")
		writeBenchmarkSection(&sb, "#### ✅ Passed Checks", report.Benchmark.Passed)
		writeBenchmarkSection(&sb, "#### ❌ Failed Checks", report.Benchmark.Failed)
		writeBenchmarkSection(&sb, "#### ⚠️ Manual Review Required", report.Benchmark.Skipped)

		sb.WriteString(remediationExamples(report.Benchmark.Failed))
		sb.WriteString(implementationTimeline(report.Benchmark.Failed))
	}

	sb.WriteString(`### 🔄 Next Steps

1. Address any failed CIS Docker Benchmark checks
2. Implement image signing with Cosign or Docker Content Trust
3. Set up automated vulnerability scanning in CI/CD
4. Generate and verify SBOMs as part of the build process
5. Consider using distroless images for production
`)

	return sb.String()
}

func writeBenchmarkSection(sb *strings.Builder, header string, items []models.BenchmarkItem) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(header + "\n\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("- **%s %s** %s\n", item.ID, item.Title, severityIcon(item.Severity)))
		sb.WriteString(fmt.Sprintf("  - %s\n\n", item.Description))
	}
}

// remediationMap holds a concrete fix example per remediable benchmark id.
var remediationMap = map[string]string{
	"4.1": `### Non-Root User (4.1)
` + "```dockerfile" + `
# For Debian/Ubuntu-based images
RUN groupadd -r appgroup && useradd -r -g appgroup appuser
USER appuser

# For Alpine-based images
RUN addgroup -S appgroup && adduser -S appuser -G appgroup
USER appuser
` + "```" + `
`,
	"4.3": `### Minimize Installed Packages (4.3)
` + "```dockerfile" + `
# For Debian/Ubuntu-based images
RUN apt-get update && apt-get install --no-install-recommends -y package1 package2 \
    && rm -rf /var/lib/apt/lists/*

# For Alpine-based images
RUN apk add --no-cache package1 package2
` + "```" + `
`,
	"4.4": `### Use Specific Image Tags (4.4)
` + "```dockerfile" + `
# Instead of
FROM node:latest

# Use specific version
FROM node:18.15.0-alpine3.16
` + "```" + `
`,
	"4.6": `### Add Healthcheck (4.6)
` + "```dockerfile" + `
# For web services
HEALTHCHECK --interval=30s --timeout=5s --start-period=5s --retries=3 \
  CMD wget -q -O- http://localhost:8080/health || exit 1

# For non-web services
HEALTHCHECK --interval=30s --timeout=5s --start-period=5s --retries=3 \
  CMD pgrep -f "main process" || exit 1
` + "```" + `
`,
	"4.7": `### Combine Update Instructions (4.7)
` + "```dockerfile" + `
# Instead of
RUN apt-get update
RUN apt-get install -y package1 package2

# Use this combined form
RUN apt-get update && apt-get install -y package1 package2 \
    && rm -rf /var/lib/apt/lists/*
` + "```" + `
`,
	"4.8": `### Remove unnecessary setuid binaries (4.8)
` + "```dockerfile" + `
RUN find / -perm /6000 -type f -exec chmod a-s {} \; || true
` + "```" + `
`,
	"4.9": `### Use COPY instead of ADD (4.9)
` + "```dockerfile" + `
# Instead of
ADD https://example.com/file.tar.gz /tmp/
RUN tar -xzf /tmp/file.tar.gz -C /app

# Use this
RUN wget -O /tmp/file.tar.gz https://example.com/file.tar.gz \
    && tar -xzf /tmp/file.tar.gz -C /app \
    && rm /tmp/file.tar.gz

# Or for local files, instead of
ADD . /app

# Use
COPY . /app
` + "```" + `
`,
	"4.10": `### Avoid storing secrets (4.10)
` + "```dockerfile" + `
# Instead of
ENV API_KEY="secret-key-value"

# Use build arguments (for build-time only)
ARG API_KEY
RUN ./setup.sh $API_KEY

# Or use runtime environment variables (preferred)
# In Dockerfile - don't set a value:
ENV API_KEY=""
# Then at runtime:
# docker run -e API_KEY=secret-value myimage
` + "```" + `
`,
}

func remediationExamples(failed []models.BenchmarkItem) string {
	var sb strings.Builder
	sb.WriteString("## 🛠️ Remediation Examples\n\n")
	for _, item := range failed {
		if example, ok := remediationMap[item.ID]; ok {
			sb.WriteString(example)
		}
	}
	return sb.String()
}

func implementationTimeline(failed []models.BenchmarkItem) string {
	bySeverity := func(severities ...models.Severity) []models.BenchmarkItem {
		var out []models.BenchmarkItem
		for _, sev := range severities {
			for _, item := range failed {
				if item.Severity == sev {
					out = append(out, item)
				}
			}
		}
		return out
	}

	var sb strings.Builder
	sb.WriteString("## ⏱️ Implementation Timeline\n\n")

	writeBucket := func(header string, items []models.BenchmarkItem) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(header + "\n\n")
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("- **%s %s** (%s)\n",
				item.ID, item.Title, strings.ToUpper(string(item.Severity))))
		}
		sb.WriteString("\n")
	}

	writeBucket("### Immediate (Next 24-48 hours)", bySeverity(models.SeverityCritical, models.SeverityHigh))
	writeBucket("### Short-term (Next 1-2 weeks)", bySeverity(models.SeverityMedium))
	writeBucket("### Mid-term (Next 2-4 weeks)", bySeverity(models.SeverityLow))

	sb.WriteString(`### Long-term (Next 1-3 months)

- Implement automated image scanning in CI/CD pipeline
- Set up container signing workflow
- Generate and verify SBOMs in build process
- Implement runtime container security monitoring
- Establish container security policy document
`)

	return sb.String()
}

// --- JSON ---

func (r *Reporter) generateJSON(report *models.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}
