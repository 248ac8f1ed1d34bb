package engine

import (
	"strings"

	"github.com/dockwise/dockwise/internal/models"
)

// debugTools are interactive or diagnostic binaries that belong in dev
// images only.
var debugTools = []string{
	"vim", "nano", "curl", "wget", "telnet", "netcat", "nc",
	"strace", "gdb", "valgrind",
}

// AnalyzeEnvironments derives development and production profiles from one
// shared build file: which environment-specific features it already has and
// what each environment is still missing. The rule order is fixed so profile
// lists are deterministic.
func AnalyzeEnvironments(text string) *models.EnvironmentAnalysis {
	lower := strings.ToLower(text)
	var dev, prod models.EnvironmentProfile

	if containsAny(lower, debugTools...) {
		dev.Features = append(dev.Features, "Debug tools included")
		prod.Recommendations = append(prod.Recommendations, "Remove debugging tools in production")
	}

	if strings.Contains(text, "devDependencies") || strings.Contains(text, "--dev") {
		dev.Features = append(dev.Features, "Development dependencies installed")
		prod.Recommendations = append(prod.Recommendations, "Use --production flag for npm/yarn in production")
	}

	envSpecific := strings.Contains(text, `if [ "$NODE_ENV" = "production" ]`) ||
		strings.Contains(text, "ARG ENV")
	if envSpecific {
		dev.Features = append(dev.Features, "Environment-specific conditional logic")
		prod.Features = append(prod.Features, "Environment-specific optimizations")
	} else {
		dev.Recommendations = append(dev.Recommendations, "Add environment-specific conditional logic (ARG ENV)")
		prod.Recommendations = append(prod.Recommendations, "Use build arguments to create optimized production builds")
	}

	if strings.Count(text, "\nFROM ") > 1 {
		prod.Features = append(prod.Features, "Uses multi-stage build for minimal image size")
	} else {
		prod.Recommendations = append(prod.Recommendations, "Implement multi-stage build for production")
	}

	hasDevMarker := strings.Contains(lower, "development") || strings.Contains(lower, "dev")
	hasProdMarker := strings.Contains(lower, "production") || strings.Contains(lower, "prod")
	if hasDevMarker && hasProdMarker {
		dev.Features = append(dev.Features, "Combined dev/prod Dockerfile with environment detection")
		prod.Features = append(prod.Features, "Combined dev/prod Dockerfile with environment detection")
	} else if !envSpecific {
		dev.Recommendations = append(dev.Recommendations, "Consider separate Dockerfiles (Dockerfile.dev and Dockerfile.prod)")
		prod.Recommendations = append(prod.Recommendations, "Consider separate Dockerfiles (Dockerfile.dev and Dockerfile.prod)")
	}

	// Fillers keep both profiles non-trivial for sparse build files.
	if len(dev.Features) < 2 {
		dev.Features = append(dev.Features, "Standard build process")
		dev.Recommendations = append(dev.Recommendations, "Add dev-specific tools and dependencies")
	}
	if len(prod.Features) < 2 {
		prod.Features = append(prod.Features, "Standard build process")
		prod.Recommendations = append(prod.Recommendations, "Optimize for size and security")
	}

	return &models.EnvironmentAnalysis{Development: dev, Production: prod}
}
