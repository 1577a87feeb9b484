// Package constants defines shared constants and environment switches
// used throughout the ribs framework.
package constants

import (
	"os"
	"strings"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

const (
	EnvironmentEnvVar      = "ENVIRONMENT"
	StrictAssertionsEnvVar = "RIBS_STRICT_ASSERTIONS"
	LogLevelEnvVar         = "RIBS_LOG_LEVEL"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// IsStrictAssertions returns true if programmer errors should panic instead of
// being logged. Development mode implies strict assertions.
func IsStrictAssertions() bool {
	if IsDevMode() {
		return true
	}
	switch strings.ToLower(os.Getenv(StrictAssertionsEnvVar)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// RouteIdentifierSuffix is trimmed from interactor type names when deriving
// a default route identifier ("DetailInteractor" becomes "Detail").
const RouteIdentifierSuffix = "Interactor"
