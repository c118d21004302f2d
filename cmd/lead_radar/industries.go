package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-radar/internal/places"
	"github.com/jonathan/lead-radar/internal/scoring"
)

var industriesCmd = &cobra.Command{
	Use:   "industries",
	Short: "List the industries and cities used by cross search, and the service-fit place types",
	RunE:  runIndustries,
}

func init() {
	rootCmd.AddCommand(industriesCmd)
}

func runIndustries(cmd *cobra.Command, _ []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tLABEL\tSEARCH TERM")
	for _, ind := range places.Industries() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", ind.ID, ind.LabelEn, ind.SearchTermEt)
	}
	_, _ = fmt.Fprintln(tw)
	_, _ = fmt.Fprintln(tw, "CITY")
	for _, c := range places.Cities() {
		_, _ = fmt.Fprintln(tw, c.Name)
	}

	targets := scoring.TargetTypes()
	sort.Strings(targets)
	_, _ = fmt.Fprintln(tw)
	_, _ = fmt.Fprintln(tw, "SERVICE-FIT PLACE TYPES")
	for _, t := range targets {
		_, _ = fmt.Fprintln(tw, t)
	}
	return tw.Flush()
}
