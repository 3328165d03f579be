package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"inkwell/internal/api"
)

func newMemoCommand(ctx *commandContext) *cobra.Command {
	memoCmd := &cobra.Command{
		Use:   "memo",
		Short: "Manage memo threads on articles",
	}

	memoCmd.AddCommand(newMemoAddCommand(ctx))
	memoCmd.AddCommand(newMemoEditCommand(ctx))
	memoCmd.AddCommand(newMemoRemoveCommand(ctx))

	return memoCmd
}

func newMemoAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <article-id> <content>",
		Short: "Add a memo to an article",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.ArticleService) error {
				memo, err := svc.AddMemo(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added memo %s\n", memo.ID)
				return nil
			})
		},
	}
}

func newMemoEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <article-id> <memo-id> <content>",
		Short: "Rewrite a memo's content",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.ArticleService) error {
				if err := svc.UpdateMemo(cmd.Context(), args[0], args[1], args[2]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated memo %s\n", args[1])
				return nil
			})
		},
	}
}

func newMemoRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <article-id> <memo-id>",
		Aliases: []string{"remove"},
		Short:   "Delete a memo from an article",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.ArticleService) error {
				if err := svc.DeleteMemo(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted memo %s\n", args[1])
				return nil
			})
		},
	}
}
