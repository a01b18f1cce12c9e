package main

import (
	"github.com/jonathan/spiderweb/internal/categories"
	"github.com/jonathan/spiderweb/internal/observability"
	"github.com/spf13/cobra"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List survey sections with weights, question counts and maximum scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			observability.NewPrinter(cmd.OutOrStdout()).PrintCategories(categories.Default())
			return nil
		},
	}
}
