package main

import (
	"github.com/spf13/cobra"

	"github.com/charlesng35/assetdesk/internal/models"
)

// listFlags binds the paging flags every list command accepts.
func listFlags(cmd *cobra.Command, p *models.ListParams) {
	cmd.Flags().IntVar(&p.PageNumber, "page", models.DefaultPageNumber, "Page number")
	cmd.Flags().IntVar(&p.PageSize, "page-size", models.DefaultPageSize, "Page size")
	cmd.Flags().StringVar(&p.SearchTerm, "search", "", "Search term")
}

// optionalBool returns a pointer to v only when the flag was set.
func optionalBool(cmd *cobra.Command, name string, v bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
