package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/api"
)

func newSummarizeCommand(ctx *commandContext) *cobra.Command {
	summarizeCmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize articles and text through the AI service",
	}

	summarizeCmd.AddCommand(newSummarizeArticleCommand(ctx))
	summarizeCmd.AddCommand(newSummarizeSelectionCommand(ctx))
	summarizeCmd.AddCommand(newSummarizeTextCommand(ctx))

	return summarizeCmd
}

func newSummarizeArticleCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "article <article-id>",
		Short: "Summarize an article's body and append the result to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.ArticleService) error {
				article, err := svc.SummarizeBody(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Appended summary to article %s (%s)\n", article.ID, article.Title)
				return nil
			})
		},
	}
}

func newSummarizeSelectionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "selection <article-id> <text>",
		Short: "Summarize a passage and record it as a memo on the article",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.ArticleService) error {
				memo, err := svc.SummarizeSelection(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added summary memo %s:\n%s\n", memo.ID, memo.Content)
				return nil
			})
		},
	}
}

func newSummarizeTextCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "text <text...>",
		Short: "Summarize free-standing text and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.ArticleService) error {
				summary := svc.SummarizeText(cmd.Context(), strings.Join(args, " "))
				fmt.Fprintln(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}
}
