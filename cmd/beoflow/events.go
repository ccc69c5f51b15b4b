package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/beoflow/internal/service"
)

func newEventsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect stored events",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List events, most recently modified first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			events := service.NewEventService(a.events).ListEvents(cmd.Context())
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tDATE\tVERSION\tMODIFIED")
			for _, e := range events {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
					e.ID, e.EventName, e.Status, e.Date, e.Version, e.LastModified.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	})
	return cmd
}
