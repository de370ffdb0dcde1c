package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/fingerprints/internal/errors"
)

// FileConfig mirrors AppConfig for YAML files. Absent keys leave the
// corresponding value untouched.
type FileConfig struct {
	Cache            *string     `yaml:"cache"`
	Assets           *string     `yaml:"assets"`
	Report           *string     `yaml:"report"`
	Probe            *string     `yaml:"probe"`
	Step             *float64    `yaml:"step"`
	Opponents        *int        `yaml:"opponents"`
	Seed             *uint64     `yaml:"seed"`
	Workers          *int        `yaml:"workers"`
	Kinds            []string    `yaml:"kinds"`
	Ashlock          *KindParams `yaml:"ashlock"`
	Transitive       *KindParams `yaml:"transitive"`
	TransitiveVShort *KindParams `yaml:"transitive_v_short"`
	Timeout          *string     `yaml:"timeout"`
	LogLevel         *string     `yaml:"log_level"`
	Theme            *string     `yaml:"theme"`
	MetricsFile      *string     `yaml:"metrics_file"`
}

// LoadFile reads a YAML configuration file. Unknown keys are rejected.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError("reading config file: %v", err)
	}
	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.NewConfigError("parsing config file %s: %v", path, err)
	}
	if fc.Timeout != nil {
		if _, err := time.ParseDuration(*fc.Timeout); err != nil {
			return nil, apperrors.NewConfigError("parsing config file %s: invalid timeout %q", path, *fc.Timeout)
		}
	}
	return &fc, nil
}

// apply copies file values into config for every flag that was not set on
// the command line.
func (fc *FileConfig) apply(config *AppConfig, fs *flag.FlagSet) {
	setString := func(dst *string, v *string, flags ...string) {
		if v != nil && !isFlagSetAny(fs, flags...) {
			*dst = *v
		}
	}
	setInt := func(dst *int, v *int, flags ...string) {
		if v != nil && !isFlagSetAny(fs, flags...) {
			*dst = *v
		}
	}
	setKind := func(dst *KindParams, v *KindParams, prefix string) {
		if v == nil {
			return
		}
		if v.Turns != 0 && !isFlagSet(fs, prefix+"-turns") {
			dst.Turns = v.Turns
		}
		if v.Repetitions != 0 && !isFlagSet(fs, prefix+"-repetitions") {
			dst.Repetitions = v.Repetitions
		}
	}

	setString(&config.CachePath, fc.Cache, "cache")
	setString(&config.AssetsDir, fc.Assets, "assets")
	setString(&config.ReportPath, fc.Report, "report")
	setString(&config.Probe, fc.Probe, "probe")
	setString(&config.LogLevel, fc.LogLevel, "log-level")
	setString(&config.Theme, fc.Theme, "theme")
	setString(&config.MetricsFile, fc.MetricsFile, "metrics-file")
	setInt(&config.Opponents, fc.Opponents, "opponents")
	setInt(&config.Workers, fc.Workers, "workers")
	if fc.Step != nil && !isFlagSet(fs, "step") {
		config.Step = *fc.Step
	}
	if fc.Seed != nil && !isFlagSet(fs, "seed") {
		config.Seed = *fc.Seed
	}
	if len(fc.Kinds) > 0 && !isFlagSet(fs, "kinds") {
		config.KindsList = strings.Join(fc.Kinds, ",")
	}
	if fc.Timeout != nil && !isFlagSet(fs, "timeout") {
		config.Timeout, _ = time.ParseDuration(*fc.Timeout)
	}
	setKind(&config.Ashlock, fc.Ashlock, "ashlock")
	setKind(&config.Transitive, fc.Transitive, "transitive")
	setKind(&config.TransitiveVShort, fc.TransitiveVShort, "v-short")
}
