// Package policy provides policy enforcement for Dockerfile analysis results.
// Rules are defined in YAML and evaluated against a computed report.
package policy

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dockwise/dockwise/internal/models"
)

// Config represents the policy configuration file.
type Config struct {
	MaxEstimatedSize   string `yaml:"max_estimated_size"` // e.g. "1.2GB", "800MB"
	MinComplianceScore int    `yaml:"min_compliance_score"`
	ForbidSecrets      bool   `yaml:"forbid_secrets"`
	ForbidCriticalRisk bool   `yaml:"forbid_critical_escape_risks"`
	RequireHealthcheck bool   `yaml:"require_healthcheck"`
	ForbidLatestTag    bool   `yaml:"forbid_latest_tag"`
}

// DefaultConfig returns the default policy configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxEstimatedSize:   "",
		MinComplianceScore: 50,
		ForbidSecrets:      true,
		ForbidCriticalRisk: true,
		RequireHealthcheck: false,
		ForbidLatestTag:    true,
	}
}

// LoadConfig reads a policy configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}

	return config, nil
}

// Enforcer evaluates policy rules against an analysis report.
type Enforcer struct {
	config *Config
}

// NewEnforcer creates a new policy enforcer.
func NewEnforcer(config *Config) *Enforcer {
	return &Enforcer{config: config}
}

// Evaluate checks all policy rules and returns the result.
func (e *Enforcer) Evaluate(report *models.Report) *models.PolicyResult {
	policyResult := &models.PolicyResult{Passed: true}

	// Check estimated image size against the threshold.
	if e.config.MaxEstimatedSize != "" {
		maxGB, err := ParseSizeGB(e.config.MaxEstimatedSize)
		if err == nil {
			passed := report.Size.OptimizedGB <= maxGB
			rule := models.PolicyRule{
				Name:        "max_estimated_size",
				Description: fmt.Sprintf("Estimated image size must be <= %s", e.config.MaxEstimatedSize),
				Value:       e.config.MaxEstimatedSize,
				Passed:      passed,
			}
			if !passed {
				rule.Message = fmt.Sprintf("Estimated size %s exceeds maximum %s",
					report.Size.OptimizedHuman(), e.config.MaxEstimatedSize)
				policyResult.Passed = false
			}
			policyResult.Rules = append(policyResult.Rules, rule)
		}
	}

	// Check compliance score
	if e.config.MinComplianceScore > 0 && report.Benchmark != nil {
		if score, ok := report.Benchmark.ComplianceScore(); ok {
			passed := score >= e.config.MinComplianceScore
			rule := models.PolicyRule{
				Name:        "min_compliance_score",
				Description: fmt.Sprintf("Minimum compliance score of %d required", e.config.MinComplianceScore),
				Value:       e.config.MinComplianceScore,
				Passed:      passed,
			}
			if !passed {
				rule.Message = fmt.Sprintf("Score %d is below minimum %d", score, e.config.MinComplianceScore)
				policyResult.Passed = false
			}
			policyResult.Rules = append(policyResult.Rules, rule)
		}
	}

	// Check hardcoded secrets
	if e.config.ForbidSecrets {
		passed := len(report.Secrets) == 0
		rule := models.PolicyRule{
			Name:        "forbid_secrets",
			Description: "No hardcoded secrets allowed",
			Value:       true,
			Passed:      passed,
		}
		if !passed {
			rule.Message = fmt.Sprintf("Found %d potential secret(s)", len(report.Secrets))
			policyResult.Passed = false
		}
		policyResult.Rules = append(policyResult.Rules, rule)
	}

	// Check critical escape risks
	if e.config.ForbidCriticalRisk {
		passed := true
		for _, risk := range report.EscapeRisks {
			if risk.Severity == models.SeverityCritical {
				passed = false
				break
			}
		}
		rule := models.PolicyRule{
			Name:        "forbid_critical_escape_risks",
			Description: "No critical container escape risks allowed",
			Value:       true,
			Passed:      passed,
		}
		if !passed {
			rule.Message = "Critical container escape risk detected"
			policyResult.Passed = false
		}
		policyResult.Rules = append(policyResult.Rules, rule)
	}

	// Check healthcheck
	if e.config.RequireHealthcheck {
		passed := checklistPassed(report.Checklist, "Healthcheck configured")
		rule := models.PolicyRule{
			Name:        "require_healthcheck",
			Description: "Container must define a healthcheck",
			Value:       true,
			Passed:      passed,
		}
		if !passed {
			rule.Message = "No HEALTHCHECK instruction found"
			policyResult.Passed = false
		}
		policyResult.Rules = append(policyResult.Rules, rule)
	}

	// Check latest tag
	if e.config.ForbidLatestTag {
		passed := checklistPassed(report.Checklist, "Specific version tags (no 'latest')")
		rule := models.PolicyRule{
			Name:        "forbid_latest_tag",
			Description: "Base images must use pinned version tags",
			Value:       true,
			Passed:      passed,
		}
		if !passed {
			rule.Message = "Unpinned base image tags detected"
			policyResult.Passed = false
		}
		policyResult.Rules = append(policyResult.Rules, rule)
	}

	return policyResult
}

// checklistPassed looks up a checklist item by its display name. Missing
// items count as failed.
func checklistPassed(checklist models.SecurityChecklist, name string) bool {
	for _, item := range checklist {
		if item.Name == name {
			return item.Passed
		}
	}
	return false
}

// ParseSizeGB parses a human-readable size string ("800MB", "1.2GB") into
// gigabytes.
func ParseSizeGB(size string) (float64, error) {
	s := strings.TrimSpace(strings.ToUpper(size))

	var multiplier float64
	var numStr string
	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1
		numStr = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1.0 / 1000
		numStr = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1.0 / 1000000
		numStr = strings.TrimSuffix(s, "KB")
	default:
		return 0, fmt.Errorf("unrecognized size format: %q", size)
	}

	num, err := strconv.ParseFloat(strings.TrimSpace(numStr), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", size, err)
	}
	return num * multiplier, nil
}

// FormatPolicyStatus returns a human-readable string of the policy result.
func FormatPolicyStatus(result *models.PolicyResult) string {
	var sb strings.Builder
	if result.Passed {
		sb.WriteString("✅ All policy checks passed\n")
	} else {
		sb.WriteString("❌ Policy checks FAILED\n")
	}
	sb.WriteString("\n")

	for _, rule := range result.Rules {
		if rule.Passed {
			sb.WriteString(fmt.Sprintf("  ✔ %s\n", rule.Description))
		} else {
			sb.WriteString(fmt.Sprintf("  ✘ %s: %s\n", rule.Description, rule.Message))
		}
	}

	return sb.String()
}
