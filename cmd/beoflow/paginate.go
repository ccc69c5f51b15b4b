package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/beoflow/internal/export"
)

func newPaginateCmd() *cobra.Command {
	var height, pageHeight float64

	cmd := &cobra.Command{
		Use:   "paginate",
		Short: "Print how an image of the given height is split across pages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pages, err := export.Paginate(height, pageHeight)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d page(s)\n", len(pages))
			for _, p := range pages {
				fmt.Fprintf(out, "page %d: offset %g height %g\n", p.Page, p.Offset, p.Height)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&height, "height", 0, "total image height")
	cmd.Flags().Float64Var(&pageHeight, "page-height", 0, "usable page height (page height minus margins)")
	_ = cmd.MarkFlagRequired("page-height")
	return cmd
}
