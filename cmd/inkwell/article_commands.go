package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inkwell/internal/api"
	"inkwell/internal/catalog"
	"inkwell/internal/textutil"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		title    string
		body     string
		bodyFile string
		source   string
		format   string
		category string
		keywords string
		attach   []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an article to the archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			if bodyFile != "" {
				data, err := os.ReadFile(bodyFile)
				if err != nil {
					return fmt.Errorf("read body file: %w", err)
				}
				body = string(data)
			}

			return ctx.withService(func(svc *api.ArticleService) error {
				article, err := svc.Create(cmd.Context(), api.DraftRequest{
					Title:    title,
					Body:     body,
					Source:   source,
					Format:   format,
					Category: category,
					Keywords: textutil.SplitKeywords(keywords),
				}, attach...)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added article %s (%s)\n", article.ID, article.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Article title (required)")
	cmd.Flags().StringVarP(&body, "body", "b", "", "Article body text")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "Read the article body from a file")
	cmd.Flags().StringVarP(&source, "source", "s", "", "Source URL or citation")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Content format ("+formatChoices()+")")
	cmd.Flags().StringVarP(&category, "category", "C", "", "Category (required)")
	cmd.Flags().StringVarP(&keywords, "keywords", "k", "", "Comma-separated keywords")
	cmd.Flags().StringArrayVarP(&attach, "attach", "a", nil, "Attach an image or PDF file (repeatable)")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var category string
	var keyword string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived articles, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.ArticleService) error {
				filter := catalog.Filter{Category: category, Keyword: keyword}
				articles := svc.List(filter)
				if len(articles) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No articles found")
					return nil
				}
				out := renderTable(
					[]string{"ID", "Title", "Format", "Category", "Keywords", "Created"},
					buildArticleRows(articles),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "C", "", "Filter by exact category")
	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "Filter by exact keyword")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <article-id>",
		Short: "Show an article with its memo thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.ArticleService) error {
				article, err := svc.Describe(args[0])
				if err != nil {
					return err
				}
				printArticle(cmd, article)
				return nil
			})
		},
	}
}

func printArticle(cmd *cobra.Command, article api.Article) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Title:    %s\n", article.Title)
	fmt.Fprintf(out, "ID:       %s\n", article.ID)
	fmt.Fprintf(out, "Format:   %s\n", formatLabel(article.Format))
	fmt.Fprintf(out, "Category: %s\n", article.Category)
	if len(article.Keywords) > 0 {
		fmt.Fprintf(out, "Keywords: %s\n", textutil.JoinKeywords(article.Keywords))
	}
	if article.Source != "" {
		fmt.Fprintf(out, "Source:   %s\n", article.Source)
	}
	fmt.Fprintf(out, "Created:  %s\n", article.CreatedAt)

	if len(article.Attachments) > 0 {
		fmt.Fprintln(out, "\nAttachments:")
		for _, att := range article.Attachments {
			fmt.Fprintf(out, "  %s (%s, %d bytes)\n", att.Name, att.MimeType, att.Size)
		}
	}

	if article.Body != "" {
		fmt.Fprintf(out, "\n%s\n", article.Body)
	}

	if len(article.Memos) > 0 {
		fmt.Fprintln(out, "\nMemos (newest first):")
		for _, memo := range article.Memos {
			tag := ""
			if memo.IsSummary {
				tag = " [AI summary]"
			}
			fmt.Fprintf(out, "  %s  %s%s\n    %s\n", memo.CreatedAt, memo.ID, tag, memo.Content)
		}
	}
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var (
		title    string
		body     string
		source   string
		format   string
		category string
		keywords string
		attach   []string
		detach   []string
	)

	cmd := &cobra.Command{
		Use:   "edit <article-id>",
		Short: "Edit an article's fields",
		Long:  "Edit an article's fields. Unset flags keep their current values; the memo thread is always preserved. Existing attachments are kept unless named with --detach; --attach adds and processes new files.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.ArticleService) error {
				current, err := svc.Describe(args[0])
				if err != nil {
					return err
				}

				attachments, err := detachByName(current.Attachments, detach)
				if err != nil {
					return err
				}
				req := api.DraftRequest{
					Title:       current.Title,
					Body:        current.Body,
					Source:      current.Source,
					Format:      current.Format,
					Category:    current.Category,
					Keywords:    current.Keywords,
					Attachments: attachments,
				}
				flags := cmd.Flags()
				if flags.Changed("title") {
					req.Title = title
				}
				if flags.Changed("body") {
					req.Body = body
				}
				if flags.Changed("source") {
					req.Source = source
				}
				if flags.Changed("format") {
					req.Format = format
				}
				if flags.Changed("category") {
					req.Category = category
				}
				if flags.Changed("keywords") {
					req.Keywords = textutil.SplitKeywords(keywords)
				}

				updated, err := svc.Update(cmd.Context(), args[0], req, attach...)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated article %s (%s)\n", updated.ID, updated.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "New body text")
	cmd.Flags().StringVarP(&source, "source", "s", "", "New source")
	cmd.Flags().StringVarP(&format, "format", "f", "", "New format ("+formatChoices()+")")
	cmd.Flags().StringVarP(&category, "category", "C", "", "New category")
	cmd.Flags().StringVarP(&keywords, "keywords", "k", "", "New comma-separated keywords")
	cmd.Flags().StringArrayVarP(&attach, "attach", "a", nil, "Attach an image or PDF file (repeatable)")
	cmd.Flags().StringArrayVar(&detach, "detach", nil, "Remove an attachment by name (repeatable)")
	return cmd
}

// detachByName drops the named attachments from the list, erroring on names
// that do not match any attachment.
func detachByName(attachments []api.Attachment, names []string) ([]api.Attachment, error) {
	if len(names) == 0 {
		return attachments, nil
	}
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = false
	}
	kept := make([]api.Attachment, 0, len(attachments))
	for _, att := range attachments {
		if _, ok := drop[att.Name]; ok {
			drop[att.Name] = true
			continue
		}
		kept = append(kept, att)
	}
	for _, name := range names {
		if !drop[name] {
			return nil, fmt.Errorf("no attachment named %q", name)
		}
	}
	return kept, nil
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <article-id>",
		Aliases: []string{"remove"},
		Short:   "Delete an article and its memo thread",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.ArticleService) error {
				article, err := svc.Describe(args[0])
				if err != nil {
					return err
				}
				if !yes {
					prompt := fmt.Sprintf("Delete %q and its %d memo(s)?", article.Title, len(article.Memos))
					if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
						fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
						return nil
					}
				}
				if err := svc.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted article %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
