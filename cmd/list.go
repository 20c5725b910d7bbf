package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"zipbatch/internal/extractor"
	"zipbatch/internal/tui"
)

var listCmd = &cobra.Command{
	Use:   "list <file-or-dir>...",
	Short: "Show what each archive contains without extracting it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collected, err := extractor.Collect(args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, dir := range collected.EmptyDirs {
			fmt.Fprintln(out, listDimStyle.Render("No zip files found in "+dir))
		}

		var (
			entries int
			size    int64
			failed  int
		)
		for i, path := range collected.Paths {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, listFileStyle.Render(path))

			stats, err := extractor.Inspect(path)
			if err != nil {
				failed++
				fmt.Fprintf(out, "  %s %s\n", listBulletStyle.Render("-"), listErrorStyle.Render(err.Error()))
				continue
			}
			entries += stats.Entries
			size += stats.Bytes
			fmt.Fprintf(out, "  %s %s\n",
				listBulletStyle.Render("-"),
				listValueStyle.Render(fmt.Sprintf("%d entries, %s bytes", stats.Entries, tui.FormatBytes(stats.Bytes))),
			)
			for _, warning := range stats.Warnings {
				fmt.Fprintf(out, "  %s %s\n", listWarnBulletStyle.Render("!"), listErrorStyle.Render(warning))
			}
		}

		if len(collected.Paths) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, tui.RenderSummary([]tui.SummaryRow{
				{Label: "Archives", Value: fmt.Sprintf("%d", len(collected.Paths))},
				{Label: "Entries", Value: fmt.Sprintf("%d", entries)},
				{Label: "Uncompressed (bytes)", Value: tui.FormatBytes(size)},
			}))
		}
		if failed > 0 {
			return fmt.Errorf("%d archive(s) could not be read", failed)
		}
		return nil
	},
}

var (
	listFileStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	listValueStyle  = lipgloss.NewStyle().Foreground(tui.ColorInk)
	listErrorStyle  = lipgloss.NewStyle().Foreground(tui.ColorWarn)
	listDimStyle    = lipgloss.NewStyle().Foreground(tui.ColorDim)
	listBulletStyle = lipgloss.NewStyle().Foreground(tui.ColorDim)

	listWarnBulletStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccentAlt)
)

func init() {
	rootCmd.AddCommand(listCmd)
}
