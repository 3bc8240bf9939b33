package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/app"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/config"
	"github.com/spf13/cobra"
)

// Env is the process environment of one invocation.
type Env struct {
	Out     io.Writer
	Err     io.Writer
	Environ []string
}

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	strictness string
}

type runner struct {
	env   Env
	flags rootFlags
	app   *app.App
}

// Execute runs the command line args. Every returned error is an
// *ExitError.
func Execute(ctx context.Context, args []string, env Env) error {
	r := &runner{env: env}
	root := r.rootCommand()
	root.SetArgs(args)
	root.SetOut(env.Out)
	root.SetErr(env.Err)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Anything cobra reports itself (unknown commands, bad arguments) is a
	// usage error.
	return usageError(err)
}

func (r *runner) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cmdgen",
		Short: "Generate a closed dispatch type from annotated command handlers",
		Long: `cmdgen captures the signature of one interface method, collects every
handler func annotated with //cmdgen:command, checks each against the
captured signature and generates a closed dispatch type over them.

State between the stages is kept in the manifest directory (.autogen by
default), so the stages may run separately: init, then collect, then
generate. build runs all three.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&r.flags.configPath, "config", config.DefaultPath, "Path to the configuration file.")
	flags.StringVar(&r.flags.logLevel, "log-level", "", "Logging level: 'debug', 'info', 'warn' or 'error'. Overrides log.level.")
	flags.StringVar(&r.flags.logFormat, "log-format", "", "Log output format: 'text' or 'json'. Overrides log.format.")
	flags.StringVar(&r.flags.strictness, "strictness", "", "Closed-set checks: 'strict' or 'permissive'. Overrides collect.strictness.")

	root.AddCommand(
		&cobra.Command{
			Use:   "init [paths...]",
			Short: "Capture the interface signature",
			RunE:  r.runInit,
		},
		&cobra.Command{
			Use:   "collect [paths...]",
			Short: "Validate and record every annotated command handler",
			RunE:  r.runCollect,
		},
		&cobra.Command{
			Use:   "generate [paths...]",
			Short: "Generate the dispatch file from the recorded commands",
			RunE:  r.runGenerate,
		},
		&cobra.Command{
			Use:   "build [paths...]",
			Short: "Run init, collect and generate in order",
			RunE:  r.runBuild,
		},
		&cobra.Command{
			Use:   "list",
			Short: "Print the recorded interface signature and commands",
			Args:  usageArgs(cobra.NoArgs),
			RunE:  r.runList,
		},
		&cobra.Command{
			Use:   "clean",
			Short: "Delete every recorded command",
			Args:  usageArgs(cobra.NoArgs),
			RunE:  r.runClean,
		},
	)
	return root
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// setup loads the configuration, applies flag overrides and builds the
// app.
func (r *runner) setup(cmd *cobra.Command, _ []string) error {
	slog.Debug("CLI setup started.", "command", cmd.Name())
	required := cmd.Flags().Changed("config")
	cfg, err := config.Load(cmd.Context(), r.flags.configPath, required, r.env.Environ)
	if err != nil {
		return usageError(err)
	}

	if r.flags.logLevel != "" {
		cfg.Log.Level = strings.ToLower(r.flags.logLevel)
	}
	if r.flags.logFormat != "" {
		cfg.Log.Format = strings.ToLower(r.flags.logFormat)
	}
	if r.flags.strictness != "" {
		cfg.Collect.Strictness = r.flags.strictness
	}
	if err := cfg.Validate(); err != nil {
		return usageError(err)
	}

	r.app = app.NewApp(r.env.Out, r.env.Err, cfg, nil)
	slog.Debug("CLI setup finished.", "config", r.flags.configPath)
	return nil
}

func (r *runner) runInit(cmd *cobra.Command, args []string) error {
	iface, err := r.app.Init(cmd.Context(), args)
	if err != nil {
		return failure(err)
	}
	fmt.Fprintf(r.env.Out, "captured %s.%s\n", iface.TypeName, iface.Method.Name)
	return nil
}

func (r *runner) runCollect(cmd *cobra.Command, args []string) error {
	results, err := r.app.Collect(cmd.Context(), args)
	if err != nil {
		return failure(err)
	}
	fmt.Fprintf(r.env.Out, "collected %d commands\n", len(results))
	return nil
}

func (r *runner) runGenerate(cmd *cobra.Command, args []string) error {
	return failure(r.app.Generate(cmd.Context(), args))
}

func (r *runner) runBuild(cmd *cobra.Command, args []string) error {
	return failure(r.app.Build(cmd.Context(), args))
}

func (r *runner) runList(cmd *cobra.Command, _ []string) error {
	return failure(r.app.List(cmd.Context()))
}

func (r *runner) runClean(cmd *cobra.Command, _ []string) error {
	n, err := r.app.Clean(cmd.Context())
	if err != nil {
		return failure(err)
	}
	fmt.Fprintf(r.env.Out, "removed %d command records\n", n)
	return nil
}
