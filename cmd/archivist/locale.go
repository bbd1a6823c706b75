package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/archivist/pkg/host"
	"github.com/dmitrymomot/archivist/pkg/i18n"
	"github.com/dmitrymomot/archivist/pkg/locale"
)

func newLocaleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locale",
		Short: "Inspect locale data",
	}

	resolve := &cobra.Command{
		Use:   "resolve [tag]",
		Short: "Print the catalog locale a tag resolves to",
		Long:  "resolve matches tag against the catalog. Without a tag the locale of the environment (LC_ALL, LC_MESSAGES, LANG) is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLocaleResolve,
	}

	dump := &cobra.Command{
		Use:   "dump <tag>",
		Short: "Print the merged translation tree of a locale",
		Args:  cobra.ExactArgs(1),
		RunE:  runLocaleDump,
	}
	dump.Flags().StringP("output", "o", "yaml", "output format: yaml, json")

	get := &cobra.Command{
		Use:   "get <tag> <key>",
		Short: "Print one translated message",
		Args:  cobra.ExactArgs(2),
		RunE:  runLocaleGet,
	}
	get.Flags().StringToStringP("param", "p", nil, "placeholder value, name=value")

	cmd.AddCommand(resolve, dump, get)
	return cmd
}

func runLocaleResolve(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	requested := locale.FromEnv(os.Getenv)
	if len(args) == 1 {
		requested = args[0]
	}

	tag, ok := a.catalog.BestMatch(requested)
	if !ok {
		return fmt.Errorf("%w: no catalog match for %q", i18n.ErrInvalidLocale, requested)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", tag, a.catalog.Name(tag))
	return nil
}

// openStore loads tag the way a visitor who picked it would see it.
func (a *app) openStore(ctx context.Context, tag string) (*i18n.Store, error) {
	if !a.catalog.Has(tag) {
		return nil, fmt.Errorf("%w: %q", i18n.ErrInvalidLocale, tag)
	}
	env, _, _ := host.NewMemoryEnv(tag, false)
	return i18n.NewStore(ctx, a.catalog, a.locales, env,
		i18n.WithDefaultLocale(a.cfg.Locales.Default),
		i18n.WithLogger(a.logger),
	)
}

func runLocaleDump(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	store, err := a.openStore(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format, _ := cmd.Flags().GetString("output"); format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(store.Data())
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(store.Data()); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func runLocaleGet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	store, err := a.openStore(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	params, _ := cmd.Flags().GetStringToString("param")
	placeholders := make(i18n.M, len(params))
	for k, v := range params {
		placeholders[k] = v
	}

	fmt.Fprintln(cmd.OutOrStdout(), store.T(args[1], placeholders))
	return nil
}
