package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	sqrtrank "github.com/AlexWan0/go-sqrtrank"
	"github.com/AlexWan0/go-sqrtrank/internal/frontend"
)

type config struct {
	input      string
	prompt     bool
	blockWidth int
	logLevel   string
	metrics    bool
}

func newRootCmd() *cobra.Command {
	var cfg config
	cmd := &cobra.Command{
		Use:   "sqrtrank",
		Short: "Answer range k-th smallest queries over an updatable sequence",
		Long: `sqrtrank reads "n q", n initial values and q operations:

  U idx val    set the value at roll idx to val
  Q L R k      print the k-th smallest value among rolls [L, R]`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}
	bindFlags(cmd.Flags(), &cfg)
	return cmd
}

func bindFlags(flags *pflag.FlagSet, cfg *config) {
	flags.StringVarP(&cfg.input, "input", "i", "-", "command stream to read, - for stdin")
	flags.BoolVar(&cfg.prompt, "prompt", false, "print the interactive banner and prompts")
	flags.IntVar(&cfg.blockWidth, "block-width", 0, "indices per block, 0 for ceil(sqrt(n))")
	flags.StringVar(&cfg.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.BoolVar(&cfg.metrics, "metrics", false, "write metrics in Prometheus text format to stderr on exit")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "parse log level %q", level)
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, cfg config) error {
	logger, err := newLogger(cfg.logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	in := stdin
	if cfg.input != "-" {
		f, err := os.Open(cfg.input)
		if err != nil {
			return errors.Wrap(err, "open input")
		}
		defer f.Close()
		in = f
	}

	reg := prometheus.NewRegistry()
	fe := frontend.New(in, stdout, frontend.Config{
		Prompt: cfg.prompt,
		Logger: logger,
		Options: []sqrtrank.Option{
			sqrtrank.WithBlockWidth(cfg.blockWidth),
			sqrtrank.WithLogger(logger),
			sqrtrank.WithMetrics(sqrtrank.NewMetrics(reg)),
		},
	})
	if err := fe.Run(ctx); err != nil {
		return err
	}
	if cfg.metrics {
		return writeMetrics(stderr, reg)
	}
	return nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "write metrics")
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString("sqrtrank: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
