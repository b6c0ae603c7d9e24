package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"finitefield.org/humor-web/internal/catalog"
	"finitefield.org/humor-web/internal/selection"
)

var catalogJSON bool

// catalogCmd prints the embedded catalog. It fails when the catalog is invalid,
// which makes it usable as a content check in CI.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and print the humor catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "print as JSON")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	out := cmd.OutOrStdout()

	if catalogJSON {
		list := make([]categoryJSON, 0, cat.Len())
		for _, rec := range cat.All() {
			list = append(list, categoryJSON{
				Record:   rec,
				KeyTrait: cat.KeyTrait(rec.ID),
				URL:      selection.RecordPath(rec.ID),
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tACCENT\tKEY TRAIT")
	for _, rec := range cat.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rec.ID, rec.Title, rec.Accent, cat.KeyTrait(rec.ID))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d categories OK\n", cat.Len())
	return nil
}
