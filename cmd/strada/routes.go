package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func routesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the configured route tables",
		Long: `Build the route tables from strada.json and print them without
starting any listeners. Building the tables surfaces the same pattern,
duplicate, and ambiguity errors that serve would report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to strada.json (default ./strada.json)")

	return cmd
}

func runRoutes(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LISTENER\tMETHOD\tPATTERN\tCAPTURES")
	for _, l := range cfg.Listeners {
		rt, err := buildRouter(l, nil, nil)
		if err != nil {
			return err
		}
		for _, desc := range rt.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", l.Addr, desc.Method, desc.Pattern, desc.Arity)
		}
	}
	return w.Flush()
}
