package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"muffle/internal/rules"
	"muffle/internal/rulestore"
)

func newRulesCommand(ctx *commandContext) *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and manage site rules",
	}

	rulesCmd.AddCommand(newRulesListCommand(ctx))
	rulesCmd.AddCommand(newRulesShowCommand(ctx))
	rulesCmd.AddCommand(newRulesAddCommand(ctx))
	rulesCmd.AddCommand(newRulesRemoveCommand(ctx))

	return rulesCmd
}

func newRulesListCommand(ctx *commandContext) *cobra.Command {
	var hostFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the effective rule table",
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := effectiveTable(cmd.Context(), ctx)
			if err != nil {
				return err
			}

			hosts := make([]string, 0, len(merged))
			for host := range merged {
				if hostFlag != "" && host != hostFlag {
					continue
				}
				hosts = append(hosts, host)
			}
			sort.Strings(hosts)

			rows := make([][]string, 0, len(hosts))
			for _, host := range hosts {
				for i, rule := range merged[host] {
					rows = append(rows, []string{
						host,
						strconv.Itoa(i),
						string(rule.Mode),
						muteMethodLabel(rule),
						showLabel(rule),
						delayLabel(rule),
						rule.Note,
					})
				}
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No rules match.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Host", "#", "Mode", "Mute", "Show", "Delay", "Note"},
				rows,
				2, 6,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&hostFlag, "host", "", "Limit output to one hostname")
	return cmd
}

func newRulesShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show HOST",
		Short: "Print a host's rules as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := effectiveTable(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			list, ok := merged[args[0]]
			if !ok {
				return fmt.Errorf("no rules for host %q", args[0])
			}
			return writeJSON(cmd, list)
		},
	}
}

func newRulesAddCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add HOST FILE",
		Short: "Install custom rules for a host from a JSON file",
		Long: "Install custom rules for a host. FILE holds a JSON rule object or " +
			"array; \"-\" reads from stdin. Custom rules replace the built-in " +
			"rules for that host.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			host := args[0]
			data, err := readRuleInput(cmd, args[1])
			if err != nil {
				return err
			}
			list, err := rules.DecodeRules(data)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("no rules found in %s", args[1])
			}
			return ctx.withStore(func(store *rulestore.Store) error {
				if err := store.Put(cmd.Context(), host, list); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %d rule(s) for %s\n", len(list), host)
				return nil
			})
		},
	}
	return cmd
}

func newRulesRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove HOST",
		Short: "Delete a host's custom rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *rulestore.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed custom rules for %s\n", args[0])
				return nil
			})
		},
	}
}

// effectiveTable merges built-in rules for the configured build target
// with the custom rules in the store.
func effectiveTable(cmdCtx context.Context, ctx *commandContext) (rules.Table, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	registry := rules.NewRegistry(rules.BuildTarget(cfg.Rules.BuildTarget))

	var custom rules.Table
	err = ctx.withStore(func(store *rulestore.Store) error {
		var err error
		custom, err = store.All(cmdCtx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return registry.SupportedAndCustomSites(custom), nil
}

func readRuleInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return data, nil
}

func muteMethodLabel(rule *rules.Rule) string {
	if rule.MuteMethod == "" {
		return string(rules.MuteVideo)
	}
	return string(rule.MuteMethod)
}

func showLabel(rule *rules.Rule) string {
	if rule.Show == "" {
		return "default"
	}
	return string(rule.Show)
}

func delayLabel(rule *rules.Rule) string {
	if rule.UnmuteDelay == nil {
		return ""
	}
	return rule.UnmuteDelay.Round(time.Millisecond).String()
}
