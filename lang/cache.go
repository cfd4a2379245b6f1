package lang

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"

	"github.com/organix/crlf/log"
	"github.com/organix/crlf/value"
)

// state tracks the compilation of one source.
type state struct {
	once   sync.Once
	result any
	err    error
}

// Decode reads a JSON or YAML document from r and decodes it into a value.
func Decode(ctx context.Context, r io.Reader) (value.Value, error) {
	// Fetch ahead of the decoder so large sources overlap I/O with parsing.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("source", "reader"))
	}

	log.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	v, err := value.Decode(data)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.Int("source_bytes", len(data)))
	}

	return v, nil
}

// CompileCached is like [Registry.Compile], but remembers the outcome for
// each distinct source. Sources are keyed by [value.Fingerprint], so object
// member order is part of a source's identity: grammars listing the same
// rules in different orders compile separately and keep their own rule
// order. Compiled values are immutable, so the same value is returned to
// every caller.
func (r *Registry) CompileCached(ctx context.Context, source value.Value) (any, error) {
	key := strconv.FormatUint(value.Fingerprint(source), 36)

	entry, cacheHit := r.cache.LoadOrStore(key, new(state))

	s, ok := entry.(*state)
	if !ok {
		return nil, ErrUnexpectedType.With(slog.String("issue", "invalid cache entry"))
	}

	r.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_key", key),
		slog.Bool("cache_hit", cacheHit),
	)

	s.once.Do(func() {
		s.result, s.err = r.Compile(source)
	})

	return s.result, s.err
}

// ClearCache discards every compilation remembered by
// [Registry.CompileCached].
func (r *Registry) ClearCache() {
	r.cache.Clear()
}

// CompileCached compiles source with the [Default] registry's cache.
func CompileCached(ctx context.Context, source value.Value) (any, error) {
	return Default.CompileCached(ctx, source)
}

// ClearCache clears the [Default] registry's cache.
func ClearCache() { Default.ClearCache() }

// As compiles source with the [Default] registry and asserts that the result
// has type T.
func As[T any](ctx context.Context, source value.Value) (T, error) {
	var zero T

	out, err := CompileCached(ctx, source)
	if err != nil {
		return zero, err
	}

	t, ok := out.(T)
	if !ok {
		return zero, ErrUnexpectedType.With(
			slog.String("want", reflect.TypeFor[T]().String()),
			slog.String("got", resultTypeName(out)),
		)
	}

	return t, nil
}

func resultTypeName(v any) string {
	if v == nil {
		return "nil"
	}

	return reflect.TypeOf(v).String()
}
