package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stride/internal/activity"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the selectable activity modes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MODE\tGOAL\tSOURCE\tTHRESHOLD\tMIN INTERVAL")
		for _, m := range activity.Catalog() {
			if m.UsesLocation() {
				fmt.Fprintf(w, "%s\t%g %s\tlocation\t-\t-\n", m.Name, m.Goal, m.Unit())
				continue
			}
			fmt.Fprintf(w, "%s\t%g %s\taccelerometer\t%g\t%s\n", m.Name, m.Goal, m.Unit(), m.Params.Threshold, m.Params.MinInterval)
		}
		return w.Flush()
	},
}

var paramsCmd = &cobra.Command{
	Use:   "params NAME",
	Short: "Show step-detection tuning for a mode name",
	Long: `Prints the threshold and debounce interval the step detector uses for NAME.
Names without their own tuning fall back to the defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := activity.ParamsFor(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "threshold: %g\nmin_interval: %s\n", p.Threshold, p.MinInterval)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(paramsCmd)
}
