package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/organix/crlf/log"
	"github.com/organix/crlf/profile"
	"github.com/organix/crlf/value"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}
	defer file.Close()

	err = value.WriteYAML(ctx, file, i.config(ktx), defaultConfigIndent)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file", slog.String("path", confPath))

	return nil
}

// config returns the configuration document: the values of the global
// flags under the [ConfigIdentifier] key.
func (i *Init) config(ktx *kong.Context) value.Object {
	prefixIgnore := []string{"help", profile.Tag}

	var entries []value.Member

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if v := flagValue(ktx.FlagValue(flag)); v != nil {
			entries = append(entries, value.Member{Name: flag.Name, Value: v})
		}
	}

	return value.NewObject(value.Member{
		Name:  ConfigIdentifier,
		Value: value.NewObject(entries...),
	})
}

// flagValue converts a flag value, or returns nil if it is unset.
func flagValue(v any) value.Value {
	switch x := v.(type) {
	case nil:
		return nil

	case string:
		if x == "" {
			return nil
		}

	case []string:
		if len(x) == 0 {
			return nil
		}
	}

	if out, err := value.FromNative(v); err == nil {
		return out
	}

	// Named types such as enum flags are written as their text.
	return value.String(fmt.Sprint(v))
}
