package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that parses config files written
// as a flat YAML mapping of flag names to values.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// Flag names may be given with hyphens (e.g., "log-level") or underscores
// (e.g., "log_level"). Command-line flags override config file values.
//
// Example config file:
//
//	log-level: debug
//	log-format: json
//	log-pretty: true
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var values map[string]any

	err = yaml.Unmarshal(data, &values)
	if err != nil {
		// Malformed config - ignore it and let Kong use defaults.
		return config{}, nil
	}

	normal := make(config, len(values))
	for key, value := range values {
		normal[key] = normalize(value)
	}

	return normal, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// Try the underscore variant of the flag name.
	name := strings.ReplaceAll(flag.Name, "-", "_")
	if value, ok := r[name]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults.
	return nil, nil
}

// normalize converts numeric YAML values to strings, which Kong requires
// for flag parsing.
func normalize(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return value
	}
}
