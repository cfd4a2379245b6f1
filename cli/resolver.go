package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/organix/crlf/lang"
	"github.com/organix/crlf/log"
	"github.com/organix/crlf/value"
)

// resolve returns a [kong.ConfigurationLoader] that reads the flag values
// in the named mapping of a JSON or YAML configuration file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config.yaml")
//
// Flag names may be written with hyphens or underscores:
//
//	config:
//	  log-level: debug
//	  log_format: json
//	  log-caller: true
//
// Command-line flags override config file values. A file that does not
// decode, or that lacks the mapping, configures nothing.
func resolve(ctx context.Context, name string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		doc, err := lang.Decode(ctx, r)
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration", slog.Any("error", err))

			return config{}, nil
		}

		obj, ok := doc.(value.Object)
		if !ok {
			return config{}, nil
		}

		ns, ok := obj.Get(name)
		if !ok {
			return config{}, nil
		}

		flags, ok := ns.(value.Object)
		if !ok {
			return config{}, nil
		}

		return objectToConfig(flags), nil
	}
}

// config implements [kong.Resolver] for configuration mappings.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if v, ok := r[flag.Name]; ok {
		return v, nil
	}

	if v, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return v, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// objectToConfig converts a mapping to native flag values.
func objectToConfig(obj value.Object) config {
	result := make(config, obj.Len())

	for key, v := range obj.All() {
		// Kong requires numbers as strings for parsing
		if n, ok := v.(value.Number); ok {
			result[key] = strconv.FormatFloat(float64(n), 'f', -1, 64)

			continue
		}

		result[key] = value.ToNative(v)
	}

	return result
}
