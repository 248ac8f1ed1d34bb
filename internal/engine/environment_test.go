package engine

import (
	"testing"
)

func hasString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func TestAnalyzeEnvironments_DebugTools(t *testing.T) {
	env := AnalyzeEnvironments("FROM ubuntu:22.04\nRUN apt-get install -y vim strace\n")

	if !hasString(env.Development.Features, "Debug tools included") {
		t.Error("expected debug tools feature for development")
	}
	if !hasString(env.Production.Recommendations, "Remove debugging tools in production") {
		t.Error("expected debug tool removal recommendation for production")
	}
}

func TestAnalyzeEnvironments_DevDependencies(t *testing.T) {
	env := AnalyzeEnvironments("FROM node:16\nRUN npm install --dev\n")

	if !hasString(env.Development.Features, "Development dependencies installed") {
		t.Error("expected dev dependencies feature")
	}
	if !hasString(env.Production.Recommendations, "Use --production flag for npm/yarn in production") {
		t.Error("expected production flag recommendation")
	}
}

func TestAnalyzeEnvironments_ConditionalLogic(t *testing.T) {
	with := AnalyzeEnvironments("FROM node:16\nARG ENV=production\n")
	if !hasString(with.Development.Features, "Environment-specific conditional logic") {
		t.Error("expected conditional logic feature with ARG ENV")
	}
	if !hasString(with.Production.Features, "Environment-specific optimizations") {
		t.Error("expected optimization feature with ARG ENV")
	}

	without := AnalyzeEnvironments("FROM alpine:3.19\n")
	if !hasString(without.Development.Recommendations, "Add environment-specific conditional logic (ARG ENV)") {
		t.Error("expected conditional logic recommendation without ARG ENV")
	}
}

func TestAnalyzeEnvironments_MultiStage(t *testing.T) {
	multi := AnalyzeEnvironments("# app\nFROM golang:1.22\nFROM alpine:3.19\n")
	if !hasString(multi.Production.Features, "Uses multi-stage build for minimal image size") {
		t.Error("expected multi-stage feature")
	}

	single := AnalyzeEnvironments("FROM alpine:3.19\n")
	if !hasString(single.Production.Recommendations, "Implement multi-stage build for production") {
		t.Error("expected multi-stage recommendation")
	}
}

func TestAnalyzeEnvironments_Fillers(t *testing.T) {
	env := AnalyzeEnvironments("FROM alpine:3.19\n")

	if !hasString(env.Development.Features, "Standard build process") {
		t.Error("expected development filler feature")
	}
	if !hasString(env.Development.Recommendations, "Add dev-specific tools and dependencies") {
		t.Error("expected development filler recommendation")
	}
	if !hasString(env.Production.Recommendations, "Optimize for size and security") {
		t.Error("expected production filler recommendation")
	}
}
