package main

import (
	"github.com/spf13/cobra"

	"blog-views/core/domain"
)

func newIndexCommand(cc *commandContext) *cobra.Command {
	var (
		page       int
		perPage    int
		tags       []int
		categories []int
		groups     []int
		exclude    []int
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the context of an article listing page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cc.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			articles, totalPages, err := a.content.GetArticles(ctx, domain.ArticleQuery{
				Tags:       tags,
				Categories: categories,
				Groups:     groups,
				Exclude:    exclude,
				PerPage:    perPage,
				Page:       page,
			})
			if err != nil {
				return err
			}

			index, err := a.views.BuildIndexContext(ctx, page, articles, totalPages)
			if err != nil {
				return err
			}

			return renderIndex(cmd.OutOrStdout(), cc.format, index)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 12, "Articles per page")
	cmd.Flags().IntSliceVar(&tags, "tag", nil, "Only articles with these tag ids")
	cmd.Flags().IntSliceVar(&categories, "category", nil, "Only articles in these category ids")
	cmd.Flags().IntSliceVar(&groups, "group", nil, "Only articles in these group ids")
	cmd.Flags().IntSliceVar(&exclude, "exclude", nil, "Article ids to leave out")

	return cmd
}

func newArticleCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "article <slug>",
		Short: "Build the context of a single article page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cc.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			articles, err := a.content.GetArticle(ctx, args[0])
			if err != nil {
				return err
			}

			article, err := a.views.BuildArticleContext(ctx, articles)
			if err != nil {
				return err
			}

			return renderArticle(cmd.OutOrStdout(), cc.format, article)
		},
	}
}

func newFeedCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "feed [tag-slug]",
		Short: "Show the blog RSS feed, optionally for one tag",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cc.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			var tag string
			if len(args) == 1 {
				tag = args[0]
			}

			feed, err := a.content.GetFeed(cmd.Context(), tag)
			if err != nil {
				return err
			}

			return renderFeed(cmd.OutOrStdout(), cc.format, feed)
		},
	}
}
