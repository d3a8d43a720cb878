package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/olivier-w/goo/internal/observability"
	"github.com/olivier-w/goo/internal/scene"
	"github.com/olivier-w/goo/internal/trace"
)

func newTraceCmd(a *app) *cobra.Command {
	var (
		ticks   int
		out     string
		preview bool
	)

	cmd := &cobra.Command{
		Use:         "trace",
		Short:       "Write one JSON line per frame without a terminal UI",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{consoleAnnotation: "stderr"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ticks < 0 {
				return fmt.Errorf("--ticks must be >= 0, got %d", ticks)
			}
			if preview {
				a.cfg.Scene.Script = scene.ScriptPreview.String()
			}
			d, err := a.director()
			if err != nil {
				return err
			}
			if ticks == 0 {
				ticks = d.LoopTicks()
			}

			var (
				frames int
				runErr error
			)
			if out == "" || out == "-" {
				frames, runErr = writeTrace(cmd.Context(), d, ticks, cmd.OutOrStdout())
			} else {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating trace file: %w", err)
				}
				frames, runErr = writeTrace(cmd.Context(), d, ticks, f)
				runErr = closeTrace(f, runErr)
			}
			if runErr != nil {
				return fmt.Errorf("trace stopped after %d frames: %w", frames, runErr)
			}

			observability.GetLogger().Info("trace written",
				zap.Int("frames", frames),
				zap.Stringer("script", d.Script()),
				zap.String("out", out))
			return nil
		},
	}

	cmd.Flags().IntVarP(&ticks, "ticks", "n", 0, "frames to write (0 writes one full loop)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&preview, "preview", false, "play the preview script instead of the configured one")
	return cmd
}

// writeTrace streams ticks frames from s to w and returns how many were
// written.
func writeTrace(ctx context.Context, s trace.Stepper, ticks int, w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	tw := trace.NewWriter(bw)
	err := trace.Run(ctx, s, ticks, tw)
	if ferr := bw.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("flushing trace: %w", ferr)
	}
	return tw.Count(), err
}

// closeTrace closes the output file. A failed close means the file may be
// truncated, so it is reported unless an earlier error already was.
func closeTrace(c io.Closer, err error) error {
	if cerr := c.Close(); cerr != nil && err == nil {
		return fmt.Errorf("closing trace file: %w", cerr)
	}
	return err
}
