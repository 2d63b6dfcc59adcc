package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/calcrst/cli/cmd"
	"github.com/ardnew/calcrst/pkg"
)

// CLI is the top-level command-line interface for calcrst.
type CLI struct {
	Log      logConfig    `embed:"" group:"log"    prefix:"log-"`
	Pprof    pprofConfig  `embed:"" group:"pprof"  prefix:"pprof-"`
	Settings cmd.Settings `embed:"" group:"render"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Render cmd.Render `cmd:"" default:"withargs" help:"Render a calculation model to reStructuredText"`
	Eval   cmd.Eval   `cmd:""                    help:"Evaluate expressions after rendering a model"`
	Fmt    cmd.Fmt    `cmd:""                    help:"Format a calculation model"`
	Repl   cmd.Repl   `cmd:""                    help:"Explore a rendered model interactively"`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file"`
}

func renderGroup() kong.Group {
	return kong.Group{Key: "render", Title: "Rendering options"}
}

// Run executes the calcrst CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		"version":            pkg.Name + " " + pkg.Version(),
		cmd.ConfigIdentifier: configFilePath + ".yaml",
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags are applied before parsing so that parse errors are
	// reported in the requested format.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group(), renderGroup()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.Bind(&cli.Settings),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve, configFilePath+".yaml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// The context provider above reads ctx when the command runs.
	ctx = cmd.WithContext(ctx, ktx)

	// TimeLayout and Caller are applied once every flag is parsed.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
