package engine

import (
	"testing"

	"github.com/dockwise/dockwise/internal/models"
)

func checklistItem(t *testing.T, checklist models.SecurityChecklist, name string) models.ChecklistItem {
	t.Helper()
	for _, item := range checklist {
		if item.Name == name {
			return item
		}
	}
	t.Fatalf("checklist item %q not found", name)
	return models.ChecklistItem{}
}

func TestBuildChecklist_MissingHealthcheck(t *testing.T) {
	content := `FROM node:16-alpine
USER node
EXPOSE 3000
CMD ["node", "server.js"]
`
	checklist := BuildChecklist(content)

	if checklistItem(t, checklist, "Healthcheck configured").Passed {
		t.Error("expected healthcheck check to fail without HEALTHCHECK")
	}
	if !checklistItem(t, checklist, "Non-root user configured").Passed {
		t.Error("expected non-root check to pass with USER instruction")
	}
	if !checklistItem(t, checklist, "Exposed ports properly managed").Passed {
		t.Error("expected expose check to pass")
	}
}

func TestBuildChecklist_LatestTag(t *testing.T) {
	checklist := BuildChecklist("FROM ubuntu:latest\n")
	if checklistItem(t, checklist, "Specific version tags (no 'latest')").Passed {
		t.Error("expected version-tag check to fail with latest tag")
	}
}

func TestBuildChecklist_CurlPipe(t *testing.T) {
	piped := BuildChecklist("FROM alpine:3.19\nRUN curl https://get.example.com | sh\n")
	if checklistItem(t, piped, "Curl piped to shell").Passed {
		t.Error("expected curl-pipe check to fail when curl output is piped")
	}

	plain := BuildChecklist("FROM alpine:3.19\nRUN curl -o /tmp/f https://example.com/f\n")
	if !checklistItem(t, plain, "Curl piped to shell").Passed {
		t.Error("expected curl-pipe check to pass without a pipe")
	}
}

func TestBuildChecklist_MultiStageMarkers(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"builder alias", "FROM golang:1.22 AS builder\n", true},
		{"copy from", "FROM alpine:3.19\nCOPY --from=base /x /x\n", true},
		{"two counted from lines", "# build\nFROM golang:1.22\nFROM alpine:3.19\n", true},
		{"single stage", "FROM alpine:3.19\nRUN apk add curl\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checklistItem(t, BuildChecklist(tt.content), "Multi-stage build").Passed
			if got != tt.want {
				t.Errorf("expected multi-stage=%v", tt.want)
			}
		})
	}
}

func TestBuildChecklist_StableOrderAndLength(t *testing.T) {
	first := BuildChecklist("FROM alpine:3.19\n")
	second := BuildChecklist("FROM node:20\nHEALTHCHECK CMD true\n")

	if len(first) != 7 || len(second) != 7 {
		t.Fatalf("expected 7 items, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Errorf("item %d name differs: %q vs %q", i, first[i].Name, second[i].Name)
		}
	}
}
