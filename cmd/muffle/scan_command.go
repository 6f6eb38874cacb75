package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var outFlag string

	cmd := &cobra.Command{
		Use:   "scan FILE",
		Short: "Report which cues in a subtitle file would mute",
		Long: "Parse a subtitle file, run every cue through the configured word " +
			"filter, and report the cues that would trigger a mute with their " +
			"timing spans. With --out, write a censored SRT copy.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cues, err := parseSubtitleFile(args[0], formatFlag)
			if err != nil {
				return err
			}
			wordFilter, err := ctx.wordFilter()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			flagged := 0
			var censored strings.Builder
			for i, cue := range cues {
				result := wordFilter.Replace(cue.Text, 0, "scan")
				if outFlag != "" {
					fmt.Fprintf(&censored, "%d\n%s --> %s\n%s\n\n",
						i+1, srtTimestamp(cue.Start), srtTimestamp(cue.End), result.Filtered)
				}
				if !result.Modified {
					continue
				}
				flagged++
				span := fmt.Sprintf("%s - %s", formatTimestamp(cue.Start), formatTimestamp(cue.End))
				if colorize {
					span = ansiRed + span + ansiReset
				}
				fmt.Fprintf(out, "%s  %s\n", span, result.Filtered)
			}

			if flagged == 0 {
				fmt.Fprintln(out, "No cues would mute.")
			} else {
				fmt.Fprintf(out, "%d of %d cue(s) would mute\n", flagged, len(cues))
			}

			if outFlag != "" {
				if err := os.WriteFile(outFlag, []byte(censored.String()), 0o644); err != nil {
					return fmt.Errorf("write censored copy: %w", err)
				}
				fmt.Fprintf(out, "Wrote censored copy to %s\n", outFlag)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Subtitle format (srt, ssa, ass, vtt); default from file extension")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Write a censored SRT copy to this path")
	return cmd
}

func srtTimestamp(seconds float64) string {
	total := int(seconds)
	millis := int((seconds - float64(total)) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", total/3600, (total/60)%60, total%60, millis)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
