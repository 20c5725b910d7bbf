package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"zipbatch/internal/extractor"
	"zipbatch/internal/tui"
)

var errArchivesFailed = errors.New("some archives failed to extract")

var (
	extractOutputDir string
	extractFlat      bool
	extractKeepTimes bool
	extractNoTUI     bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [flags] <file-or-dir>...",
	Short: "Extract zip archives into an output folder",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("output") {
			cfg.OutputDir = extractOutputDir
		}
		if cmd.Flags().Changed("flat") {
			cfg.Subfolders = !extractFlat
		}
		if cmd.Flags().Changed("keep-times") {
			cfg.KeepTimes = extractKeepTimes
		}
		if cfg.OutputDir != "" {
			if abs, absErr := filepath.Abs(cfg.OutputDir); absErr == nil {
				cfg.OutputDir = abs
			}
		}

		interactive := !extractNoTUI && term.IsTerminal(int(os.Stdout.Fd()))
		log, closeLog, err := newLogger(cfg, interactive)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		updates := make(chan extractor.Update, 64)
		batch := extractor.New(extractor.NewChannelSink(updates), log)

		var (
			result extractor.RunResult
			runErr error
		)
		var g errgroup.Group
		g.Go(func() error {
			// Keep draining after an early quit so the run never blocks.
			defer func() {
				for range updates {
				}
			}()
			if !interactive {
				tui.Print(cmd.OutOrStdout(), updates)
				return nil
			}
			final, err := tea.NewProgram(tui.NewModel(updates)).Run()
			if m, ok := final.(tui.Model); ok && m.Interrupted() {
				cancel()
			}
			return err
		})
		g.Go(func() error {
			defer close(updates)
			for _, arg := range args {
				if info, statErr := os.Stat(arg); statErr == nil && info.IsDir() {
					if _, err := batch.AddDirectory(arg); err != nil {
						return err
					}
					continue
				}
				batch.AddPaths(extractor.CollectFiles([]string{arg}))
			}
			batch.SetOutputRoot(cfg.OutputDir)
			result, runErr = batch.Run(ctx, extractor.Options{
				SubfolderPerArchive: cfg.Subfolders,
				KeepModTimes:        cfg.KeepTimes,
			})
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}
		if runErr != nil {
			return runErr
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, tui.RenderResult(result))
		fmt.Fprintf(out, "Extracted files written to: %s\n", cfg.OutputDir)

		switch {
		case result.Cancelled:
			return fmt.Errorf("extraction cancelled after %d of %d archives", result.Succeeded+len(result.Failures), result.Total())
		case len(result.Failures) > 0:
			return fmt.Errorf("%d of %d archives: %w", len(result.Failures), result.Total(), errArchivesFailed)
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutputDir, "output", "o", "", "destination folder for extracted files")
	extractCmd.Flags().BoolVar(&extractFlat, "flat", false, "extract every archive directly into the output folder")
	extractCmd.Flags().BoolVar(&extractKeepTimes, "keep-times", false, "restore entry modification times")
	extractCmd.Flags().BoolVar(&extractNoTUI, "no-tui", false, "print plain progress lines instead of the interactive view")

	rootCmd.AddCommand(extractCmd)
}
