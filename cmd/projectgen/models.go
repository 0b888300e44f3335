package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/singhbipin2117/gen-ai-project-generator/llm"
)

var modelsProvider string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known planner models",
	RunE:  runModels,
}

func init() {
	modelsCmd.Flags().StringVar(&modelsProvider, "provider", "", "Only list models for this provider")
}

func runModels(cmd *cobra.Command, args []string) error {
	models := llm.ListModels(modelsProvider)
	if len(models) == 0 {
		return fmt.Errorf("no known models for provider %q", modelsProvider)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROVIDER\tMODEL\tCONTEXT\tMAX OUTPUT\tALIASES")
	for _, m := range models {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			m.Provider, m.ID, m.ContextWindow, m.MaxOutput,
			strings.Join(m.Aliases, ", "))
	}
	return w.Flush()
}
