package cli

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/organix/crlf/cli/cmd"
	"github.com/organix/crlf/lang"
	"github.com/organix/crlf/log"
	"github.com/organix/crlf/pkg"
)

// CLI is the top-level command-line interface for crlf.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Match cmd.Match `cmd:"" help:"Match input against a grammar rule"`
	Repl  cmd.Repl  `cmd:"" help:"Match input against a grammar interactively"`
	Fv    cmd.Fv    `cmd:"" help:"List the free variables of a term"`
	Subst cmd.Subst `cmd:"" help:"Substitute a term for a variable"`
	Eval  cmd.Eval  `cmd:"" help:"Evaluate an expression"`
	Fmt   cmd.Fmt   `cmd:"" help:"Format a source document"`
	Init  cmd.Init  `cmd:"" help:"Initialize configuration file"`
}

// Run executes the crlf CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
// Command output is written to stdout.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return run(ctx, os.Stdout, exit, args...)
}

func run(
	ctx context.Context,
	w io.Writer,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.ConfigIdentifier:  configFile(),
		cmd.HistoryIdentifier: historyFile(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.BindTo(w, (*io.Writer)(nil)),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFileJSON()),
		kong.Configuration(resolve(ctx, baseConfig), configFile()),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	lang.Default = lang.NewDefault(lang.WithLogger(log.Default()))

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
