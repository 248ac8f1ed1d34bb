// Package engine implements the rule-based Dockerfile analysis and
// estimation core. Every entry point is a pure function of the raw build-file
// text: no I/O, no shared state, no network. Malformed or directive-free
// input degrades to default feature values instead of failing.
package engine

import (
	"regexp"
	"strings"
)

var (
	baseImageRegex  = regexp.MustCompile(`(?i)FROM\s+([^\s:]+):?([^\s]*)`)
	runCmdRegex     = regexp.MustCompile(`RUN\s+(.+)`)
	copyCmdRegex    = regexp.MustCompile(`COPY\s+(.+)`)
	addCmdRegex     = regexp.MustCompile(`ADD\s+(.+)`)
	aptInstallRegex = regexp.MustCompile(`apt-get\s+install\s+[^&|;]+`)
	copyFromRegex   = regexp.MustCompile(`COPY\s+--from`)
	workdirRegex    = regexp.MustCompile(`WORKDIR\s+(\S+)`)
	exposeRegex     = regexp.MustCompile(`EXPOSE\s+([0-9]+)`)
	npmInstallRegex = regexp.MustCompile(`npm\s+install`)
	yarnInstallRe   = regexp.MustCompile(`yarn\s+install`)
	pipInstallRegex = regexp.MustCompile(`pip\s+install`)
)

// Features is the read-only snapshot of structural signals extracted from
// build-file text. It is computed once per analysis call and never mutated.
type Features struct {
	BaseImage string // first FROM image name, lowercased; "" when absent
	BaseTag   string // tag of the first FROM, lowercased; "" when absent

	// Directive counts, computed by counting line starts ("\nRUN " etc.).
	// A directive on the very first line of the file is not counted by this
	// method; downstream weights were calibrated against that behavior, so
	// it is kept as is.
	RunCount  int
	CopyCount int
	AddCount  int
	FromCount int

	RunCommands  []string // raw argument text of each RUN occurrence
	CopyCommands []string
	AddCommands  []string

	AptInstallClauses []string // lowercased "apt-get install ..." clauses

	HasPackageJSON   bool
	HasNPMInstall    bool
	HasYarnInstall   bool
	HasPipInstall    bool
	HasRequirements  bool
	ProductionDeps   bool // --production flag or NODE_ENV=production
	HasBuilderAlias  bool // "AS builder" / "AS build" stage alias
	CopyFromCount    int
	HasCacheCleanup  bool
	HasCombinedRuns  bool // "&&" combinator anywhere
	HasDockerignore  bool // a ".dockerignore" reference in the text
	HasHealthcheck   bool
	HasExpose        bool
	Workdir          string // "" when no WORKDIR instruction
	ExposedPort      string // "" when no numeric EXPOSE instruction

	// First-occurrence byte offsets in the lowercased text, -1 when absent.
	// Used for instruction-ordering heuristics.
	RequirementsOffset int
	PackageJSONOffset  int
	ContextCopyOffset  int // first "copy . ."
}

// MultiStage reports whether the build file uses a multi-stage build: either
// a named builder stage alias or more than one counted FROM line.
func (f *Features) MultiStage() bool {
	return f.HasBuilderAlias || f.FromCount > 1
}

// Extract scans raw build-file text and derives the feature snapshot. It
// never fails: absent patterns yield zero values.
func Extract(text string) *Features {
	lower := strings.ToLower(text)

	f := &Features{
		RunCount:  strings.Count(text, "\nRUN "),
		CopyCount: strings.Count(text, "\nCOPY "),
		AddCount:  strings.Count(text, "\nADD "),
		FromCount: strings.Count(text, "\nFROM "),

		HasPackageJSON:  strings.Contains(text, "package.json"),
		HasNPMInstall:   npmInstallRegex.MatchString(lower),
		HasYarnInstall:  yarnInstallRe.MatchString(lower),
		HasPipInstall:   pipInstallRegex.MatchString(lower),
		HasRequirements: strings.Contains(text, "requirements.txt"),
		ProductionDeps: strings.Contains(lower, "--production") ||
			strings.Contains(text, "NODE_ENV=production"),
		HasBuilderAlias: strings.Contains(lower, "as builder") ||
			strings.Contains(lower, "as build"),
		CopyFromCount:   len(copyFromRegex.FindAllString(text, -1)),
		HasCombinedRuns: strings.Contains(text, "&&"),
		HasDockerignore: strings.Contains(text, ".dockerignore"),
		HasHealthcheck:  strings.Contains(lower, "healthcheck"),
		HasExpose:       strings.Contains(lower, "expose"),

		RequirementsOffset: strings.Index(lower, "requirements.txt"),
		PackageJSONOffset:  strings.Index(lower, "package.json"),
		ContextCopyOffset:  strings.Index(lower, "copy . ."),
	}

	if m := baseImageRegex.FindStringSubmatch(text); m != nil {
		f.BaseImage = strings.ToLower(m[1])
		f.BaseTag = strings.ToLower(m[2])
	}

	for _, m := range runCmdRegex.FindAllStringSubmatch(text, -1) {
		f.RunCommands = append(f.RunCommands, m[1])
	}
	for _, m := range copyCmdRegex.FindAllStringSubmatch(text, -1) {
		f.CopyCommands = append(f.CopyCommands, m[1])
	}
	for _, m := range addCmdRegex.FindAllStringSubmatch(text, -1) {
		f.AddCommands = append(f.AddCommands, m[1])
	}

	f.AptInstallClauses = aptInstallRegex.FindAllString(lower, -1)

	f.HasCacheCleanup = strings.Contains(text, "rm -rf") && containsAny(text,
		"/var/cache", "apt-get clean", "npm cache", "pip cache")

	if m := workdirRegex.FindStringSubmatch(text); m != nil {
		f.Workdir = m[1]
	}
	if m := exposeRegex.FindStringSubmatch(text); m != nil {
		f.ExposedPort = m[1]
	}

	return f
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
