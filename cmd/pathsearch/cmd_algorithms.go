package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/search"
	"github.com/spf13/cobra"
)

func newAlgorithmsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "algorithms",
		Short: "List the available search algorithms",
		RunE: func(cmd *cobra.Command, args []string) error {
			algs := search.Algorithms()
			infos := make([]apptype.AlgorithmInfo, len(algs))
			for i, alg := range algs {
				infos[i] = alg.Info()
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(apptype.AlgorithmsResult{Algorithms: infos})
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tINFORMED\tOPTIMAL")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%s\t%t\t%t\n", info.ID, info.Name, info.Informed, info.Optimal)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
