// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Aliased flags list both the short and long form.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an env key (without the FINGERPRINTS_ prefix) to the CLI
// flag name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func intOverride(key, flagName string, field func(*AppConfig) *int) envOverride {
	return envOverride{key, []string{flagName}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*field(c) = parsed
		}
	}}
}

func stringOverride(key, flagName string, field func(*AppConfig) *string) envOverride {
	return envOverride{key, []string{flagName}, func(c *AppConfig, v string) {
		*field(c) = v
	}}
}

func boolOverride(key string, flags []string, field func(*AppConfig) *bool) envOverride {
	return envOverride{key, flags, func(c *AppConfig, v string) {
		*field(c) = parseBoolEnv(v, *field(c))
	}}
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	intOverride("OPPONENTS", "opponents", func(c *AppConfig) *int { return &c.Opponents }),
	intOverride("WORKERS", "workers", func(c *AppConfig) *int { return &c.Workers }),
	intOverride("ASHLOCK_TURNS", "ashlock-turns", func(c *AppConfig) *int { return &c.Ashlock.Turns }),
	intOverride("ASHLOCK_REPETITIONS", "ashlock-repetitions", func(c *AppConfig) *int { return &c.Ashlock.Repetitions }),
	intOverride("TRANSITIVE_TURNS", "transitive-turns", func(c *AppConfig) *int { return &c.Transitive.Turns }),
	intOverride("TRANSITIVE_REPETITIONS", "transitive-repetitions", func(c *AppConfig) *int { return &c.Transitive.Repetitions }),
	intOverride("V_SHORT_TURNS", "v-short-turns", func(c *AppConfig) *int { return &c.TransitiveVShort.Turns }),
	intOverride("V_SHORT_REPETITIONS", "v-short-repetitions", func(c *AppConfig) *int { return &c.TransitiveVShort.Repetitions }),
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}},
	{"STEP", []string{"step"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Step = parsed
		}
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	stringOverride("CACHE", "cache", func(c *AppConfig) *string { return &c.CachePath }),
	stringOverride("ASSETS", "assets", func(c *AppConfig) *string { return &c.AssetsDir }),
	stringOverride("REPORT", "report", func(c *AppConfig) *string { return &c.ReportPath }),
	stringOverride("PROBE", "probe", func(c *AppConfig) *string { return &c.Probe }),
	stringOverride("KINDS", "kinds", func(c *AppConfig) *string { return &c.KindsList }),
	stringOverride("LOG_LEVEL", "log-level", func(c *AppConfig) *string { return &c.LogLevel }),
	stringOverride("THEME", "theme", func(c *AppConfig) *string { return &c.Theme }),
	stringOverride("METRICS_FILE", "metrics-file", func(c *AppConfig) *string { return &c.MetricsFile }),

	// Boolean overrides
	boolOverride("FORCE", []string{"force"}, func(c *AppConfig) *bool { return &c.Force }),
	boolOverride("COMPACT", []string{"compact"}, func(c *AppConfig) *bool { return &c.Compact }),
	boolOverride("VERBOSE", []string{"v", "verbose"}, func(c *AppConfig) *bool { return &c.Verbose }),
	boolOverride("QUIET", []string{"q", "quiet"}, func(c *AppConfig) *bool { return &c.Quiet }),
	boolOverride("NO_COLOR", []string{"no-color"}, func(c *AppConfig) *bool { return &c.NoColor }),
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// Priority: CLI flags > environment > config file > defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
