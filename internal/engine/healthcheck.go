package engine

import (
	"fmt"
	"strings"
)

// InjectHealthcheck returns a copy of the build file with a HEALTHCHECK
// instruction inserted before the first CMD or ENTRYPOINT, or appended when
// neither exists. The probe command is chosen per application family and
// targets the first exposed port (8080 when none). Input that already has a
// HEALTHCHECK is returned unchanged.
func InjectHealthcheck(text string) string {
	if strings.Contains(text, "HEALTHCHECK") {
		return text
	}

	lower := strings.ToLower(text)

	port := "8080"
	if m := exposeRegex.FindStringSubmatch(text); m != nil {
		port = m[1]
	}

	var healthcheck string
	switch {
	case containsAny(lower, "node", "npm", "yarn"):
		healthcheck = fmt.Sprintf("HEALTHCHECK --interval=30s --timeout=5s --start-period=5s --retries=3 CMD wget -q -O- http://localhost:%s/health || exit 1", port)
	case containsAny(lower, "python", "pip", "django", "flask"):
		healthcheck = fmt.Sprintf("HEALTHCHECK --interval=30s --timeout=5s --start-period=5s --retries=3 CMD curl -f http://localhost:%s/health || exit 1", port)
	case containsAny(lower, "java", "mvn", "gradle"):
		healthcheck = fmt.Sprintf("HEALTHCHECK --interval=30s --timeout=5s --start-period=5s --retries=3 CMD curl -f http://localhost:%s/actuator/health || exit 1", port)
	default:
		healthcheck = fmt.Sprintf("HEALTHCHECK --interval=30s --timeout=5s --start-period=5s --retries=3 CMD wget -q -O- http://localhost:%s/ || exit 1", port)
	}

	cmdPos := strings.Index(text, "CMD ")
	entryPos := strings.Index(text, "ENTRYPOINT ")
	insertPos := minNonNegative(cmdPos, entryPos)
	if insertPos == -1 {
		return text + "\n\n# Add healthcheck\n" + healthcheck
	}
	return text[:insertPos] + "\n# Add healthcheck\n" + healthcheck + "\n\n" + text[insertPos:]
}

func minNonNegative(a, b int) int {
	switch {
	case a == -1:
		return b
	case b == -1:
		return a
	case a < b:
		return a
	default:
		return b
	}
}
