package engine

import (
	"fmt"
	"strings"

	"github.com/dockwise/dockwise/internal/models"
)

// imageFamilies is the recognition order for classifying a base image.
var imageFamilies = []string{
	"node", "python", "golang", "java", "openjdk", "ubuntu", "debian", "alpine",
}

// distrolessMap maps a base-image family to its distroless counterpart.
var distrolessMap = []struct{ family, image string }{
	{"python", "gcr.io/distroless/python3"},
	{"node", "gcr.io/distroless/nodejs"},
	{"java", "gcr.io/distroless/java"},
	{"go", "gcr.io/distroless/static"},
	{"debian", "gcr.io/distroless/base"},
	{"ubuntu", "gcr.io/distroless/base"},
}

// SuggestDistroless returns the distroless image matching the base image's
// family, or the generic base when no family matches.
func SuggestDistroless(baseImage string) string {
	lower := strings.ToLower(baseImage)
	for _, entry := range distrolessMap {
		if strings.Contains(lower, entry.family) {
			return entry.image
		}
	}
	return "gcr.io/distroless/base"
}

// DefaultDockerignore returns the canonical entry list for a generated
// .dockerignore file, header comment included.
func DefaultDockerignore() []string {
	return []string{
		"# Auto-generated Dockerignore",
		"**/node_modules",
		"**/__pycache__",
		"*.log",
		".git",
		".env",
		"Dockerfile.dev",
	}
}

// SynthesizeTemplate produces an environment-aware two-stage build template
// derived from the input file: application family from its text, base image
// per the caller's preference, WORKDIR and EXPOSE carried over with defaults
// of /app and 8080.
func SynthesizeTemplate(text string, pref models.BasePreference) string {
	f := Extract(text)
	lower := strings.ToLower(text)

	workdir := f.Workdir
	if workdir == "" {
		workdir = "/app"
	}
	port := f.ExposedPort
	if port == "" {
		port = "8080"
	}

	switch {
	case containsAny(lower, "node", "npm", "yarn"):
		return nodeTemplate(selectBase(f, pref, "node", "node:16"), workdir, port)
	case containsAny(lower, "python", "pip"):
		return pythonTemplate(selectBase(f, pref, "python", "python:3.9"), workdir, port)
	default:
		return genericTemplate(originalBase(f, "alpine:3.16"), workdir, port)
	}
}

// selectBase picks the template's base image. Non-original preferences force
// the family's alpine/slim/full variant; the original preference preserves
// the input's first base image when it belongs to the same family.
func selectBase(f *Features, pref models.BasePreference, family, fallback string) string {
	switch pref {
	case models.PreferAlpine:
		return family + versionForFamily(family) + "-alpine"
	case models.PreferSlim:
		return family + versionForFamily(family) + "-slim"
	case models.PreferFull:
		return family + versionForFamily(family)
	default:
		if imageFamily(f) == family {
			return originalBase(f, fallback)
		}
		return fallback
	}
}

func versionForFamily(family string) string {
	if family == "python" {
		return ":3.9"
	}
	return ":16"
}

// imageFamily classifies the first base image, checking name then tag.
func imageFamily(f *Features) string {
	for _, family := range imageFamilies {
		if strings.Contains(f.BaseImage, family) || strings.Contains(f.BaseTag, family) {
			return family
		}
	}
	return ""
}

// originalBase reconstructs the input's first base-image reference.
func originalBase(f *Features, fallback string) string {
	if f.BaseImage == "" {
		return fallback
	}
	if f.BaseTag != "" {
		return f.BaseImage + ":" + f.BaseTag
	}
	return f.BaseImage
}

// installCommand returns the package-install prefix appropriate for the
// image's distribution. Unknown images default to the Debian form.
func installCommand(image string) string {
	if strings.Contains(strings.ToLower(image), "alpine") {
		return "apk add --no-cache"
	}
	return "apt-get update && apt-get install -y --no-install-recommends"
}

func cleanupCommand(image string) string {
	if strings.Contains(strings.ToLower(image), "alpine") {
		return "rm -rf /var/cache/apk/*"
	}
	return "rm -rf /var/lib/apt/lists/*"
}

func userCreationCommand(image string) string {
	if strings.Contains(strings.ToLower(image), "alpine") {
		return "RUN addgroup -S appgroup && adduser -S appuser -G appgroup"
	}
	return "RUN groupadd -r appgroup && useradd -r -g appgroup appuser"
}

func nodeTemplate(base, workdir, port string) string {
	return fmt.Sprintf(`# Optimized Dockerfile with dev/prod environments
# Usage:
# Development: docker build --build-arg ENV=development -t myapp:dev .
# Production: docker build --build-arg ENV=production -t myapp:prod .

# Build stage
FROM %[1]s AS builder
ARG ENV=production
WORKDIR %[2]s

# Copy package files first for better caching
COPY package*.json ./
RUN if [ "$ENV" = "development" ]; then \
      npm install; \
    else \
      npm ci --only=production; \
    fi

# Copy application code
COPY . .

# Build if needed (e.g., for TypeScript, Next.js, etc.)
RUN if [ -f "tsconfig.json" ]; then \
      npm run build; \
    fi

# Production stage (smaller image)
FROM %[1]s AS production
ARG ENV=production
WORKDIR %[2]s
ENV NODE_ENV=$ENV

# Copy only necessary files from builder
COPY --from=builder %[2]s/package*.json ./
COPY --from=builder %[2]s/node_modules ./node_modules

# For builds like Next.js, React, etc.
COPY --from=builder %[2]s/.next ./.next 2>/dev/null || true
COPY --from=builder %[2]s/build ./build 2>/dev/null || true
COPY --from=builder %[2]s/dist ./dist 2>/dev/null || true

# Add development tools if in dev environment
RUN if [ "$ENV" = "development" ]; then \
      %[4]s vim curl; \
    fi

# Create non-root user for security
%[5]s
USER appuser

# Expose port
EXPOSE %[3]s

# Healthcheck
HEALTHCHECK --interval=30s --timeout=5s --start-period=5s --retries=3 \
  CMD wget --no-verbose --tries=1 --spider http://localhost:%[3]s/health || exit 1

# Start the application
CMD ["npm", "start"]
`, base, workdir, port, installCommand(base), userCreationCommand(base))
}

func pythonTemplate(base, workdir, port string) string {
	return fmt.Sprintf(`# Optimized Dockerfile with dev/prod environments
# Usage:
# Development: docker build --build-arg ENV=development -t myapp:dev .
# Production: docker build --build-arg ENV=production -t myapp:prod .

# Build stage
FROM %[1]s AS builder
ARG ENV=production
WORKDIR %[2]s

# Install build dependencies
RUN %[4]s gcc \
    && %[5]s

# Copy requirements first for better caching
COPY requirements*.txt ./
RUN if [ "$ENV" = "development" ] && [ -f "requirements-dev.txt" ]; then \
      pip install --no-cache-dir -r requirements-dev.txt; \
    else \
      pip install --no-cache-dir -r requirements.txt; \
    fi

# Copy application code
COPY . .

# Production stage (smaller image)
FROM %[1]s AS production
ARG ENV=production
WORKDIR %[2]s
ENV PYTHONUNBUFFERED=1 \
    PYTHONDONTWRITEBYTECODE=1 \
    ENVIRONMENT=$ENV

# Copy only necessary files from builder
COPY --from=builder %[2]s/requirements.txt ./
RUN pip install --no-cache-dir -r requirements.txt

# Copy application code
COPY --from=builder %[2]s ./

# Add development tools if in dev environment
RUN if [ "$ENV" = "development" ]; then \
      %[4]s vim curl \
      && %[5]s; \
    fi

# Create non-root user for security
%[6]s
USER appuser

# Expose port
EXPOSE %[3]s

# Healthcheck
HEALTHCHECK --interval=30s --timeout=5s --start-period=5s --retries=3 \
  CMD curl --fail http://localhost:%[3]s/health || exit 1

# Start the application
CMD ["python", "app.py"]
`, base, workdir, port, installCommand(base), cleanupCommand(base), userCreationCommand(base))
}

func genericTemplate(base, workdir, port string) string {
	return fmt.Sprintf(`# Optimized Dockerfile with dev/prod environments
# Usage:
# Development: docker build --build-arg ENV=development -t myapp:dev .
# Production: docker build --build-arg ENV=production -t myapp:prod .

# Build stage
FROM %[1]s AS builder
ARG ENV=production
WORKDIR %[2]s

# Copy application code
COPY . .

# Install dependencies based on environment
RUN if [ "$ENV" = "development" ]; then \
      echo "Installing development dependencies"; \
    else \
      echo "Installing production dependencies"; \
    fi

# Production stage
FROM %[1]s AS production
ARG ENV=production
WORKDIR %[2]s

# Copy from builder stage
COPY --from=builder %[2]s ./

# Add development tools if in dev environment
RUN if [ "$ENV" = "development" ]; then \
      echo "Installing development tools"; \
    fi

# Create non-root user for security
%[4]s
USER appuser

# Expose port
EXPOSE %[3]s

# Start the application
CMD ["echo", "Application started"]
`, base, workdir, port, userCreationCommand(base))
}
