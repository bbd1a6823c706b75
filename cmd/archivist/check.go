package main

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("check failed")

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the site configuration and locale resources",
		Long: "check loads the site configuration and every locale in the catalog, " +
			"lists the records flagged with an error and the locales that fail to load, " +
			"and exits non-zero when anything is reported.",
		Args: cobra.NoArgs,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	site, err := a.loadSite()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	failed := 0

	for _, p := range site.Problems() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Kind, p.ID, p.Name)
		failed++
	}

	for _, e := range a.catalog.Entries() {
		if _, err := a.locales.Load(cmd.Context(), e.Tag); err != nil {
			fmt.Fprintf(w, "locale\t%s\t%v\n", e.Tag, err)
			failed++
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d problem(s)", errCheckFailed, failed)
	}
	a.logger.Info("site is valid",
		slog.Int("repositories", len(site.Index.Repositories())),
		slog.Int("locales", a.catalog.Len()),
	)
	return nil
}
