package engine

import "testing"

func TestEstimateBuildTime_BaseOnly(t *testing.T) {
	est := EstimateBuildTime("FROM node:16-alpine\n")

	if est.OriginalSeconds != 30 {
		t.Errorf("expected base 30s, got %d", est.OriginalSeconds)
	}
	// No manifest-first ordering and no .dockerignore reference caps the
	// accumulated reduction at 20%.
	if est.OptimizedSeconds != 24 {
		t.Errorf("expected optimized 24s, got %d", est.OptimizedSeconds)
	}
}

func TestRunCommandCost_AptGet(t *testing.T) {
	// Tokens: apt-get, install, -y, git = 4, so 10 + 2*4 = 18.
	if got := runCommandCost("apt-get install -y git"); got != 18 {
		t.Errorf("expected cost 18, got %d", got)
	}
}

func TestRunCommandCost_AptGetUpdateAndInstall(t *testing.T) {
	got := runCommandCost("apt-get update")
	if got != 15 {
		t.Errorf("expected 15 for apt-get update, got %d", got)
	}
}

func TestRunCommandCost_AptInstallCapped(t *testing.T) {
	cmd := "apt-get install -y a b c d e f g h i j k l m n o p q r s t u v w x y z a1 b1 c1"
	if got := runCommandCost(cmd); got != 60 {
		t.Errorf("expected capped cost 60, got %d", got)
	}
}

func TestRunCommandCost_NpmInstall(t *testing.T) {
	if got := runCommandCost("npm install"); got != 90 {
		t.Errorf("expected 90 for npm install, got %d", got)
	}
	if got := runCommandCost("npm install --production"); got != 40 {
		t.Errorf("expected 40 for production npm install, got %d", got)
	}
}

func TestRunCommandCost_YarnInstall(t *testing.T) {
	if got := runCommandCost("yarn install"); got != 80 {
		t.Errorf("expected 80 for yarn install, got %d", got)
	}
	if got := runCommandCost("yarn install --frozen-lockfile"); got != 35 {
		t.Errorf("expected 35 for frozen-lockfile yarn install, got %d", got)
	}
}

func TestRunCommandCost_PipRequirements(t *testing.T) {
	if got := runCommandCost("pip install -r requirements.txt"); got != 40 {
		t.Errorf("expected 40 for requirements install, got %d", got)
	}
}

func TestRunCommandCost_GitClone(t *testing.T) {
	full := runCommandCost("git clone https://example.com/repo.git")
	shallow := runCommandCost("git clone --depth=1 https://example.com/repo.git")
	if full-shallow != 15 {
		t.Errorf("expected shallow clone to save 15s, got full %d, shallow %d", full, shallow)
	}
}

func TestEstimateBuildTime_AddCosts(t *testing.T) {
	content := `FROM ubuntu:22.04
ADD https://example.com/pkg.bin /opt/pkg
ADD archive.tar /opt
ADD config.yml /etc/app/
`
	est := EstimateBuildTime(content)

	// Base 30 plus 15 for the download, 10 for the archive, 5 for the file.
	if est.OriginalSeconds != 60 {
		t.Errorf("expected 60s, got %d", est.OriginalSeconds)
	}
}

func TestEstimateBuildTime_MultiStage(t *testing.T) {
	content := `FROM golang:1.22 AS builder
COPY . .

FROM alpine:3.19
COPY --from=builder /app /app
`
	est := EstimateBuildTime(content)

	// Two COPY lines on top of the base, then the flat 40% multi-stage cut.
	if est.OriginalSeconds != 40 {
		t.Errorf("expected original 40s, got %d", est.OriginalSeconds)
	}
	if est.OptimizedSeconds != 24 {
		t.Errorf("expected optimized 24s, got %d", est.OptimizedSeconds)
	}
}

func TestEstimateBuildTime_DependencyFirstOrdering(t *testing.T) {
	ordered := `FROM node:16
COPY package.json ./
RUN npm ci
COPY . .
`
	unordered := `FROM node:16
COPY . .
RUN npm ci
COPY package.json ./
`
	if !dependencyManifestFirst(Extract(ordered)) {
		t.Error("expected manifest-first ordering to be detected")
	}
	if dependencyManifestFirst(Extract(unordered)) {
		t.Error("did not expect manifest-first ordering")
	}
}

func TestDependencyManifestFirst_AbsentPatterns(t *testing.T) {
	// No manifest at all is never dependency-first.
	if dependencyManifestFirst(Extract("FROM alpine:3.19\nCOPY . .\n")) {
		t.Error("absent manifest should not count as first")
	}
	// A manifest with no full-context copy counts as first.
	if !dependencyManifestFirst(Extract("FROM node:16\nCOPY package.json ./\n")) {
		t.Error("manifest without context copy should count as first")
	}
}
