package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"blog-views/core/domain"
)

const (
	formatJSON  = "json"
	formatTable = "table"

	maxTitleWidth = 60
)

// resolveFormat validates the requested format. An empty format picks
// table for terminals and json for everything else.
func resolveFormat(requested string, out io.Writer) (string, error) {
	switch strings.ToLower(requested) {
	case formatJSON:
		return formatJSON, nil
	case formatTable:
		return formatTable, nil
	case "", "auto":
		if isTerminal(out) {
			return formatTable, nil
		}
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or table)", requested)
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// writeJSON encodes v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	return tw
}

func renderIndex(w io.Writer, format string, ctx *domain.IndexContext) error {
	if format == formatJSON {
		return writeJSON(w, ctx)
	}

	tw := newTable(w)
	tw.SetTitle(fmt.Sprintf("Page %d of %d", ctx.CurrentPage, ctx.TotalPages))
	tw.AppendHeader(table.Row{"ID", "Date", "Title", "Author", "Group", "Image"})
	for _, a := range ctx.Articles {
		tw.AppendRow(table.Row{a.ID, a.Date, truncate(a.Title), authorName(a.Author), groupName(a.Group, ctx.Groups), imageURL(a.Image)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	tw.Render()

	ids := make([]int, 0, len(ctx.UsedCategories))
	for id := range ctx.UsedCategories {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	ct := newTable(w)
	ct.AppendHeader(table.Row{"Category", "Name"})
	for _, id := range ids {
		name := "-"
		if c := ctx.UsedCategories[id]; c != nil {
			name = c.Name
		}
		ct.AppendRow(table.Row{id, name})
	}
	ct.Render()

	return nil
}

func renderArticle(w io.Writer, format string, ctx *domain.ArticleContext) error {
	if format == formatJSON {
		return writeJSON(w, ctx)
	}

	tagNames := make([]string, 0, len(ctx.Tags))
	for _, tag := range ctx.Tags {
		tagNames = append(tagNames, tag.Name)
	}

	tw := newTable(w)
	tw.AppendRows([]table.Row{
		{"ID", ctx.Article.ID},
		{"Title", ctx.Article.Title},
		{"Date", ctx.Article.Date},
		{"Author", authorName(ctx.Article.Author)},
		{"Link", ctx.Article.Link},
		{"Tags", strings.Join(tagNames, ", ")},
		{"In series", strconv.FormatBool(ctx.IsInSeries)},
	})
	tw.Render()

	if ctx.RelatedArticles == nil {
		fmt.Fprintln(w, "Related articles unavailable")
		return nil
	}

	rt := newTable(w)
	rt.SetTitle("Related articles")
	rt.AppendHeader(table.Row{"ID", "Date", "Title"})
	for _, a := range ctx.RelatedArticles {
		rt.AppendRow(table.Row{a.ID, a.Date, truncate(a.Title)})
	}
	rt.Render()

	return nil
}

func renderFeed(w io.Writer, format string, feed *domain.Feed) error {
	if format == formatJSON {
		return writeJSON(w, feed)
	}

	tw := newTable(w)
	tw.SetTitle(feed.Title)
	tw.AppendHeader(table.Row{"Published", "Title", "Author", "Link"})
	for _, e := range feed.Entries {
		published := ""
		if !e.Published.IsZero() {
			published = e.Published.Format("2006-01-02")
		}
		tw.AppendRow(table.Row{published, truncate(e.Title), e.Author, e.Link})
	}
	tw.Render()

	return nil
}

func truncate(s string) string {
	return text.Trim(s, maxTitleWidth)
}

func authorName(u *domain.User) string {
	if u == nil {
		return "-"
	}
	return u.Name
}

func groupName(id *int, groups map[int]*domain.Group) string {
	if id == nil {
		return "-"
	}
	if g := groups[*id]; g != nil {
		return g.Name
	}
	return strconv.Itoa(*id)
}

func imageURL(m *domain.Media) string {
	if m == nil {
		return "-"
	}
	return m.SourceURL
}
