package engine

import (
	"math"
	"strings"

	"github.com/dockwise/dockwise/internal/models"
)

// Per-package and presence weights for the additive size model, in GB.
const (
	defaultBaseSizeGB   = 1.0
	aptPackageWeightGB  = 0.05
	npmProdWeightGB     = 0.2
	npmDevWeightGB      = 0.4
	pipBaseWeightGB     = 0.25
	heavyPackageGB      = 0.3
	largeDataWeightGB   = 0.3
	layerOverheadGB     = 0.02
	minPlainReduction   = 0.30 // floor when no multi-stage build exists
	multiStageReduction = 0.40
	copyFromReduction   = 0.60
)

// heavyPyPackages are data-science dependencies that dominate image size.
var heavyPyPackages = []string{
	"tensorflow", "pytorch", "torch", "scipy", "pandas", "numpy", "scikit-learn",
}

// largeDataKeywords hint at bulk data baked into the image. Each match adds
// its weight independently; overlapping keywords ("data"/"dataset") stack.
var largeDataKeywords = []string{"data", "dataset", "images", "models", "assets"}

// EstimateSize computes the before/after image-size estimate in GB from the
// raw build-file text.
func EstimateSize(text string) models.SizeEstimate {
	return estimateSize(text, Extract(text))
}

func estimateSize(text string, f *Features) models.SizeEstimate {
	lower := strings.ToLower(text)
	original := baseImageSizeGB(f.BaseImage, f.BaseTag)

	original += float64(countAptPackages(f.AptInstallClauses)) * aptPackageWeightGB

	if f.HasPackageJSON && (f.HasNPMInstall || f.HasYarnInstall) {
		if f.ProductionDeps {
			original += npmProdWeightGB
		} else {
			original += npmDevWeightGB
		}
	}

	if f.HasRequirements || f.HasPipInstall {
		original += pipBaseWeightGB
		for _, pkg := range heavyPyPackages {
			if strings.Contains(lower, pkg) {
				original += heavyPackageGB
			}
		}
	}

	for _, kw := range largeDataKeywords {
		if strings.Contains(lower, kw) {
			original += largeDataWeightGB
		}
	}

	original += float64(f.RunCount+f.CopyCount+f.AddCount) * layerOverheadGB

	var optimized float64
	if f.MultiStage() {
		if f.CopyFromCount > 0 {
			// Only specific artifacts survive into the final stage.
			optimized = original * (1 - copyFromReduction)
		} else {
			optimized = original * (1 - multiStageReduction)
		}
	} else {
		reduction := 0.0
		if f.HasCacheCleanup {
			reduction += 0.1
		}
		if f.HasCombinedRuns {
			reduction += 0.1
		}
		optimized = original * (1 - reduction)

		// A minimum reduction is always asserted for single-stage builds.
		if floor := original * (1 - minPlainReduction); optimized > floor {
			optimized = floor
		}
	}

	return models.SizeEstimate{
		OriginalGB:  roundTenth(original),
		OptimizedGB: roundTenth(optimized),
	}
}

// baseImageSizeGB classifies the first base image into a size family.
// Rules are ordered and first-match-wins; family-specific branches refine
// by tag variant (alpine/slim).
func baseImageSizeGB(image, tag string) float64 {
	if image == "" {
		return defaultBaseSizeGB
	}
	switch {
	case strings.Contains(image, "alpine"):
		return 0.4
	case strings.Contains(image, "scratch"):
		return 0.2
	case strings.Contains(tag, "slim"):
		return 0.7
	case strings.Contains(image, "ubuntu"):
		return 1.3
	case strings.Contains(image, "debian"):
		return 1.1
	case strings.Contains(image, "node"):
		if strings.Contains(tag, "alpine") {
			return 0.6
		}
		return 1.5
	case strings.Contains(image, "python"):
		if strings.Contains(tag, "alpine") {
			return 0.7
		}
		return 1.3
	case strings.Contains(image, "golang"):
		if strings.Contains(tag, "alpine") {
			return 0.6
		}
		return 1.4
	case strings.Contains(image, "openjdk"), strings.Contains(image, "java"):
		if strings.Contains(tag, "alpine") {
			return 1.0
		}
		return 1.6
	default:
		return defaultBaseSizeGB
	}
}

// countAptPackages counts non-flag tokens after "install" in each apt-get
// install clause. Line-continuation backslashes are not packages.
func countAptPackages(clauses []string) int {
	count := 0
	for _, clause := range clauses {
		words := strings.Fields(clause)
		installIdx := -1
		for i, w := range words {
			if w == "install" {
				installIdx = i
				break
			}
		}
		if installIdx == -1 {
			continue
		}
		for _, w := range words[installIdx+1:] {
			if !strings.HasPrefix(w, "-") && w != `\` {
				count++
			}
		}
	}
	return count
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
