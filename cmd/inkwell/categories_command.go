package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"inkwell/internal/api"
	"inkwell/internal/textutil"
)

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the derived category and keyword index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.ArticleService) error {
				categories := svc.Categories()
				if len(categories) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No categories yet")
					return nil
				}
				rows := make([][]string, 0, len(categories))
				for _, entry := range categories {
					rows = append(rows, []string{entry.Category, textutil.JoinKeywords(entry.Keywords)})
				}
				out := renderTable(
					[]string{"Category", "Keywords"},
					rows,
					[]columnAlignment{alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}
