package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/circuitgo/internal/app"
)

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
}

func runtimeError(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: ExitFailure, Message: err.Error(), Err: err}
}

// options collects every flag; each command binds the subset it uses.
type options struct {
	configPath string
	logLevel   string
	logFormat  string
	output     string
	graphID    string
	bestEffort bool
	net        bool
	addr       string
	svg        string
}

// Execute runs the command line. Results go to outW, logs and messages to
// errW. A non-nil error is always an *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCmd(outW, errW)
	root.SetArgs(args)
	root.SetOut(outW)
	root.SetErr(errW)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Anything cobra rejected before a command ran is a usage problem.
	return usageError(err)
}

// NewRootCmd builds the command tree.
func NewRootCmd(outW, errW io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "circuitgo",
		Short:         "circuitgo executes dataflow graphs of blocks",
		Long:          "circuitgo loads graphs of blocks connected port to port from HCL or JSON files and executes them in dependency order.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a TOML configuration file.")
	pf.StringVar(&opts.logLevel, "log-level", "info", "Logging level: debug, info, warn or error.")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log output format: text or json.")

	root.AddCommand(
		newRunCmd(opts, outW, errW),
		newValidateCmd(opts, outW, errW),
		newBlocksCmd(opts, outW, errW),
		newDotCmd(opts, outW, errW),
		newServeCmd(opts, outW, errW),
	)
	return root
}

// newApp turns flags, the optional config file and positional paths into a
// validated App.
func newApp(cmd *cobra.Command, opts *options, paths []string, outW, errW io.Writer) (*app.App, error) {
	cfg := app.Config{
		Paths:      paths,
		GraphID:    opts.graphID,
		Output:     opts.output,
		BestEffort: opts.bestEffort,
		EnableNet:  opts.net,
		LogLevel:   opts.logLevel,
		LogFormat:  opts.logFormat,
		Addr:       opts.addr,
	}
	if opts.configPath != "" {
		fc, err := app.LoadFileConfig(opts.configPath)
		if err != nil {
			return nil, usageError(err)
		}
		fc.Apply(&cfg, func(name string) bool { return cmd.Flags().Changed(name) })
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, usageError(err)
	}
	a, err := app.NewApp(outW, errW, config)
	if err != nil {
		return nil, runtimeError(err)
	}
	return a, nil
}

func newRunCmd(opts *options, outW, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run PATH...",
		Short: "Execute graphs and print their outputs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, args, outW, errW)
			if err != nil {
				return err
			}
			return runtimeError(a.Run(cmd.Context()))
		},
	}
	cmd.Flags().StringVarP(&opts.graphID, "graph", "g", "", "Run only the graph with this id.")
	cmd.Flags().StringVarP(&opts.output, "output", "o", app.OutputText, "Result format: text or json.")
	cmd.Flags().BoolVar(&opts.bestEffort, "best-effort", false, "Keep running independent branches after a node fails.")
	cmd.Flags().BoolVar(&opts.net, "net", false, "Enable blocks that make network requests.")
	return cmd
}

func newValidateCmd(opts *options, outW, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate PATH...",
		Short: "Load graphs and check every node's configuration",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, args, outW, errW)
			if err != nil {
				return err
			}
			return runtimeError(a.Validate(cmd.Context()))
		},
	}
	cmd.Flags().StringVarP(&opts.graphID, "graph", "g", "", "Validate only the graph with this id.")
	cmd.Flags().BoolVar(&opts.net, "net", false, "Enable blocks that make network requests.")
	return cmd
}

func newBlocksCmd(opts *options, outW, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List the available block types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, nil, outW, errW)
			if err != nil {
				return err
			}
			return runtimeError(a.Blocks())
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", app.OutputText, "Listing format: text or json.")
	cmd.Flags().BoolVar(&opts.net, "net", false, "Include blocks that make network requests.")
	return cmd
}

func newDotCmd(opts *options, outW, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dot PATH...",
		Short: "Render a graph as Graphviz DOT or SVG",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, args, outW, errW)
			if err != nil {
				return err
			}
			return runtimeError(a.Draw(cmd.Context(), opts.svg))
		},
	}
	cmd.Flags().StringVarP(&opts.graphID, "graph", "g", "", "Id of the graph to render.")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "Write an SVG file instead of printing DOT.")
	cmd.Flags().BoolVar(&opts.net, "net", false, "Enable blocks that make network requests.")
	_ = cmd.MarkFlagRequired("graph")
	return cmd
}

func newServeCmd(opts *options, outW, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve PATH...",
		Short: "Serve the HTTP inspection API over loaded graphs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, args, outW, errW)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runtimeError(a.Serve(ctx))
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", app.DefaultAddr, "Listen address.")
	cmd.Flags().BoolVar(&opts.net, "net", false, "Enable blocks that make network requests.")
	return cmd
}
