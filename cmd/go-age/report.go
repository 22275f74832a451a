package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/live"
	"github.com/tartampluch/go-age/internal/present"
)

type reportOptions struct {
	birth  string
	format string
	lang   string
	live   bool
}

// newReportCmd prints one age report to stdout. clock supplies "now".
func newReportCmd(clock engine.Clock) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:           config.CmdReportUse,
		Short:         config.CmdReportShort,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), clock, opts)
		},
	}

	cmd.Flags().StringVar(&opts.birth, config.FlagBirth, "", config.FlagDescBirth)
	cmd.Flags().StringVar(&opts.format, config.FlagFormat, config.FormatText, config.FlagDescFormat)
	cmd.Flags().StringVar(&opts.lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	cmd.Flags().BoolVar(&opts.live, config.FlagLive, false, config.FlagDescLive)

	return cmd
}

// runReport runs the gate, then encodes the report or, with --live, keeps
// patching the seconds line until ctx is done.
func runReport(ctx context.Context, out, errOut io.Writer, clock engine.Clock, opts *reportOptions) error {
	if opts.live && opts.format != config.FormatText {
		return fmt.Errorf("%w: %s", present.ErrUnsupportedFormat, opts.format)
	}

	catalog, err := present.NewCatalog(opts.lang)
	if err != nil {
		return err
	}
	p := present.NewPresenter(catalog)
	surface := present.NewTextSurface(out, errOut)
	if opts.live {
		surface = present.NewLiveTextSurface(out, errOut)
	}

	report, err := engine.NewGate(clock).Submit(opts.birth)
	if err != nil {
		p.RenderError(surface, err)
		return err
	}

	slog.Debug(config.MsgReportComputed,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyFormat, opts.format,
		config.LogKeyYears, report.Years)

	if !opts.live {
		return p.Encode(out, opts.format, report, clock.Now())
	}

	p.Render(surface, report)

	ticker := live.NewElapsedTicker(clock, config.TickInterval, func(seconds int64) {
		p.PatchElapsed(surface, seconds)
	})
	ticker.Start(ctx, report.Birth)
	<-ctx.Done()
	ticker.Stop()

	_, _ = fmt.Fprintln(out)
	return nil
}
