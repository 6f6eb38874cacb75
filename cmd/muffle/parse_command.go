package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"muffle/internal/subtitles"
)

func newParseCommand() *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:         "parse FILE",
		Short:       "Parse a subtitle file and print its cues",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cues, err := parseSubtitleFile(args[0], formatFlag)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(cues))
			for i, cue := range cues {
				rows = append(rows, []string{
					rowNumber(i),
					formatTimestamp(cue.Start),
					formatTimestamp(cue.End),
					cue.Text,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Start", "End", "Text"},
				rows,
				1, 2, 3,
			))
			fmt.Fprintf(cmd.OutOrStdout(), "%d cue(s)\n", len(cues))
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Subtitle format (srt, ssa, ass, vtt); default from file extension")
	return cmd
}

func parseSubtitleFile(path, format string) ([]subtitles.Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	cues, err := subtitles.Parse(format, string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cues, nil
}

func formatTimestamp(seconds float64) string {
	total := int(seconds)
	millis := int((seconds - float64(total)) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", total/3600, (total/60)%60, total%60, millis)
}

func rowNumber(i int) string {
	return fmt.Sprintf("%d", i+1)
}
