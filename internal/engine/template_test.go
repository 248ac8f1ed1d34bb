package engine

import (
	"strings"
	"testing"

	"github.com/dockwise/dockwise/internal/models"
)

func TestSynthesizeTemplate_NodeAlpine(t *testing.T) {
	content := `FROM node:14
WORKDIR /srv/app
EXPOSE 3000
RUN npm install
CMD ["npm", "start"]
`
	tmpl := SynthesizeTemplate(content, models.PreferAlpine)

	if !strings.Contains(tmpl, "FROM node:16-alpine AS builder") {
		t.Error("expected alpine node base in builder stage")
	}
	if !strings.Contains(tmpl, "WORKDIR /srv/app") {
		t.Error("expected workdir carried over")
	}
	if !strings.Contains(tmpl, "EXPOSE 3000") {
		t.Error("expected exposed port carried over")
	}
	if !strings.Contains(tmpl, "apk add --no-cache") {
		t.Error("expected alpine install command")
	}
	if !strings.Contains(tmpl, "addgroup -S appgroup") {
		t.Error("expected alpine user creation")
	}
	if !strings.Contains(tmpl, "ARG ENV=production") {
		t.Error("expected ARG ENV conditional template")
	}
}

func TestSynthesizeTemplate_PreserveOriginalBase(t *testing.T) {
	tmpl := SynthesizeTemplate("FROM node:18.15.0\nRUN npm ci\n", models.PreferOriginal)

	if !strings.Contains(tmpl, "FROM node:18.15.0 AS builder") {
		t.Errorf("expected original base preserved, got:\n%s", tmpl)
	}
}

func TestSynthesizeTemplate_PythonSlim(t *testing.T) {
	tmpl := SynthesizeTemplate("FROM python:3.8\nRUN pip install -r requirements.txt\n", models.PreferSlim)

	if !strings.Contains(tmpl, "FROM python:3.9-slim AS builder") {
		t.Error("expected slim python base")
	}
	if !strings.Contains(tmpl, "pip install --no-cache-dir -r requirements.txt") {
		t.Error("expected pip install in template")
	}
	if !strings.Contains(tmpl, "groupadd -r appgroup") {
		t.Error("expected debian-style user creation for slim base")
	}
}

func TestSynthesizeTemplate_GenericDefaults(t *testing.T) {
	tmpl := SynthesizeTemplate("RUN echo hi\n", models.PreferFull)

	if !strings.Contains(tmpl, "FROM alpine:3.16 AS builder") {
		t.Errorf("expected fallback base for unrecognized input, got:\n%s", tmpl)
	}
	if !strings.Contains(tmpl, "WORKDIR /app") {
		t.Error("expected default workdir")
	}
	if !strings.Contains(tmpl, "EXPOSE 8080") {
		t.Error("expected default port")
	}
	if !strings.Contains(tmpl, "USER appuser") {
		t.Error("expected non-root user in template")
	}
}

func TestSuggestDistroless(t *testing.T) {
	tests := []struct {
		image    string
		expected string
	}{
		{"python", "gcr.io/distroless/python3"},
		{"node", "gcr.io/distroless/nodejs"},
		{"java", "gcr.io/distroless/java"},
		{"golang", "gcr.io/distroless/static"},
		{"debian", "gcr.io/distroless/base"},
		{"busybox", "gcr.io/distroless/base"},
	}
	for _, tt := range tests {
		if got := SuggestDistroless(tt.image); got != tt.expected {
			t.Errorf("SuggestDistroless(%q) = %q, want %q", tt.image, got, tt.expected)
		}
	}
}

func TestDefaultDockerignore(t *testing.T) {
	entries := DefaultDockerignore()

	if entries[0] != "# Auto-generated Dockerignore" {
		t.Errorf("expected header first, got %q", entries[0])
	}
	joined := strings.Join(entries, "\n")
	for _, want := range []string{"**/node_modules", "**/__pycache__", ".env", ".git"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected entry %q", want)
		}
	}
}
