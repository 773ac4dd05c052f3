package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newRootCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "agenda",
		Short:         "Personal agenda with events, quick notes and calendar views.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetOut(out)

	addServe(cmd)
	addDemo(cmd)
	return cmd
}

func addServe(topLevel *cobra.Command) {
	o := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the agenda JSON API",
		Example: `
agenda serve
agenda serve --addr :9090
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), o)
		},
	}
	cmd.Flags().StringVar(&o.Addr, "addr", "", "Listen address, overrides AGENDA_HTTP_ADDR.")

	topLevel.AddCommand(cmd)
}

func addDemo(topLevel *cobra.Command) {
	o := &demoOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Seed a session with sample data and print its views",
		Example: `
agenda demo
agenda demo --date 2024-03-13 --type clase
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), cmd.OutOrStdout(), o)
		},
	}
	cmd.Flags().StringVar(&o.Date, "date", "", `Reference day as YYYY-MM-DD, defaults to today.`)
	cmd.Flags().StringVar(&o.Type, "type", "all", `Event type filter, "all" shows every type.`)

	topLevel.AddCommand(cmd)
}
