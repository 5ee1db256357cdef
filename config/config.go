// Package config loads pool configuration documents from YAML or JSON
// files and applies them onto a pool.Builder. File values travel through
// the Builder's validating setters, so they obey exactly the same
// constraints as values set in code; keys omitted from the document keep
// the Builder defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/genc-murat/crystalpool/pool"
)

// Duration is a time.Duration that unmarshals from the human-readable
// syntax accepted by time.ParseDuration ("30m", "1h30m", "0").
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a scalar value")
	}
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Document is the on-disk shape of a pool configuration file. Every key is
// optional; the customizer hook has no file representation and stays
// code-only.
type Document struct {
	Pool PoolSection `yaml:"pool"`
}

type PoolSection struct {
	InitialSize             *int      `yaml:"initial_size"`
	MaxSize                 *int      `yaml:"max_size"`
	MaxIdleTime             *Duration `yaml:"max_idle_time"`
	MaxCreateConnectionTime *Duration `yaml:"max_create_connection_time"`
	MaxAcquireTime          *Duration `yaml:"max_acquire_time"`
	ValidationQuery         *string   `yaml:"validation_query"`
}

// Load reads the configuration file at path and returns a pool.Builder for
// the given factory with the file's values applied. The decoder is chosen
// by extension: .yaml/.yml or .json.
//
// The read is guarded by a shared advisory lock on the file, so a writer
// holding an exclusive lock while rewriting the file cannot interleave a
// torn read.
func Load(path string, factory pool.ConnectionFactory) (*pool.Builder, error) {
	builder, err := pool.NewBuilder(factory)
	if err != nil {
		return nil, err
	}

	data, err := readLocked(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = applyYAML(data, builder)
	case ".json":
		err = applyJSON(data, builder)
	default:
		return nil, fmt.Errorf("unsupported config file format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	if err := builder.Err(); err != nil {
		return nil, fmt.Errorf("error in config file %s: %w", path, err)
	}
	return builder, nil
}

func readLocked(path string) ([]byte, error) {
	// flock creates the file it locks; a missing config file must stay an
	// error rather than silently becoming an empty one.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	lock := flock.New(path)
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("error locking config file: %w", err)
	}
	defer lock.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return data, nil
}

func applyYAML(data []byte, builder *pool.Builder) error {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	apply(doc.Pool, builder)
	return nil
}

func applyJSON(data []byte, builder *pool.Builder) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid JSON document")
	}

	var section PoolSection
	for _, field := range []struct {
		key  string
		dest **int
	}{
		{"pool.initial_size", &section.InitialSize},
		{"pool.max_size", &section.MaxSize},
	} {
		r := gjson.GetBytes(data, field.key)
		if !r.Exists() {
			continue
		}
		// mirror the YAML decoder: only whole numbers fit an int key
		if r.Type != gjson.Number {
			return fmt.Errorf("invalid integer %q for %s", r.String(), field.key)
		}
		n, err := strconv.Atoi(r.Raw)
		if err != nil {
			return fmt.Errorf("invalid integer %q for %s", r.Raw, field.key)
		}
		*field.dest = &n
	}
	for _, field := range []struct {
		key  string
		dest **Duration
	}{
		{"pool.max_idle_time", &section.MaxIdleTime},
		{"pool.max_create_connection_time", &section.MaxCreateConnectionTime},
		{"pool.max_acquire_time", &section.MaxAcquireTime},
	} {
		r := gjson.GetBytes(data, field.key)
		if !r.Exists() {
			continue
		}
		parsed, err := time.ParseDuration(r.String())
		if err != nil {
			return fmt.Errorf("invalid duration %q for %s: %w", r.String(), field.key, err)
		}
		d := Duration(parsed)
		*field.dest = &d
	}
	if r := gjson.GetBytes(data, "pool.validation_query"); r.Exists() {
		q := r.String()
		section.ValidationQuery = &q
	}

	apply(section, builder)
	return nil
}

func apply(section PoolSection, builder *pool.Builder) {
	if section.InitialSize != nil {
		builder.InitialSize(*section.InitialSize)
	}
	if section.MaxSize != nil {
		builder.MaxSize(*section.MaxSize)
	}
	if section.MaxIdleTime != nil {
		builder.MaxIdleTime(time.Duration(*section.MaxIdleTime))
	}
	if section.MaxCreateConnectionTime != nil {
		builder.MaxCreateConnectionTime(time.Duration(*section.MaxCreateConnectionTime))
	}
	if section.MaxAcquireTime != nil {
		builder.MaxAcquireTime(time.Duration(*section.MaxAcquireTime))
	}
	if section.ValidationQuery != nil {
		builder.ValidationQuery(*section.ValidationQuery)
	}
}
