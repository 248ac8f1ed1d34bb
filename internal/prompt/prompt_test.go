package prompt

import (
	"strings"
	"testing"

	"github.com/dockwise/dockwise/internal/models"
)

func promptReport() *models.Report {
	return &models.Report{
		Size: models.SizeEstimate{OriginalGB: 1.5, OptimizedGB: 0.6},
		Time: models.TimeEstimate{OriginalSeconds: 120, OptimizedSeconds: 72},
		Checklist: models.SecurityChecklist{
			{Name: "Non-root user configured", Passed: true},
			{Name: "Healthcheck configured", Passed: false},
		},
		Environment: &models.EnvironmentAnalysis{
			Development: models.EnvironmentProfile{
				Features:        []string{"Debug tools included"},
				Recommendations: []string{"Add dev-specific tools and dependencies"},
			},
			Production: models.EnvironmentProfile{
				Recommendations: []string{"Optimize for size and security"},
			},
		},
		Distroless: "gcr.io/distroless/nodejs",
	}
}

func TestBuild_PayloadCarriesProvider(t *testing.T) {
	payload := Build(promptReport(), "FROM node:16-alpine\n", ProviderClaude)
	if payload.Provider != ProviderClaude {
		t.Errorf("expected claude provider, got %s", payload.Provider)
	}
	if payload.Prompt == "" {
		t.Fatal("expected a non-empty prompt")
	}
}

func TestBuild_PromptSections(t *testing.T) {
	dockerfile := "FROM node:16-alpine\nWORKDIR /app\nCMD [\"node\", \"server.js\"]\n"
	payload := Build(promptReport(), dockerfile, ProviderGemini)

	for _, want := range []string{
		"**Mandatory Requirements:**",
		"## 📊 Metrics",
		"Before: 120s | After: 72s (40% reduction)",
		"Original: 1.5GB → Optimized: 600MB (60% smaller)",
		"  ✅ Non-root user configured",
		"  ❌ Healthcheck configured",
		"## 🔀 Environment-Specific Differences",
		"- Debug tools included",
		"- Optimize for size and security",
		"## 🔒 Security Checklist",
		"- [ ] Use multi-stage builds to reduce final image size",
		"FROM gcr.io/distroless/nodejs",
		"## 🚀 Validation Commands",
	} {
		if !strings.Contains(payload.Prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if !strings.HasSuffix(payload.Prompt, dockerfile) {
		t.Error("expected the prompt to end with the analyzed Dockerfile")
	}
}

func TestBuild_SecretsSection(t *testing.T) {
	report := promptReport()
	report.Secrets = []models.SecretFinding{{Line: 7, Column: 1, Category: "API Key"}}

	payload := Build(report, "FROM alpine:3.19\n", ProviderOpenAI)
	if !strings.Contains(payload.Prompt, "## ⚠️ Potential Secrets Detected") {
		t.Error("expected the secrets section")
	}
	if !strings.Contains(payload.Prompt, "- API Key found at line 7") {
		t.Error("expected the finding location")
	}
}

func TestBuild_NoOptionalSections(t *testing.T) {
	report := promptReport()
	report.Distroless = ""
	report.Environment = nil

	payload := Build(report, "FROM alpine:3.19\n", ProviderPerplexity)
	if strings.Contains(payload.Prompt, "Distroless Images") {
		t.Error("expected no distroless section without a suggestion")
	}
	if strings.Contains(payload.Prompt, "Environment-Specific Differences") {
		t.Error("expected no environment section without an analysis")
	}
}
