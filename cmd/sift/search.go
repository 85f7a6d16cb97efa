package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pders01/sift/internal/api"
	"github.com/pders01/sift/internal/relevance"
	"github.com/pders01/sift/internal/session"
	"github.com/pders01/sift/internal/tui"
)

var (
	searchPage     int
	searchPageSize int
	chunkPageSize  int
	titleWidth     = 60
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search articles by similarity and print one page of results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		size := searchPageSize
		if size <= 0 {
			size = cfg.API.SearchPageSize
		}

		page, err := api.NewClient(cfg).SearchArticles(cmd.Context(), query, searchPage, size)
		if err != nil {
			return fmt.Errorf("search %q: %w", query, err)
		}
		writeArticles(cmd.OutOrStdout(), page, cfg.UI.DateFormat)
		return nil
	},
}

var chunksCmd = &cobra.Command{
	Use:   "chunks <article-id> <query>",
	Short: "Print an article's chunks in reading order with their distance to a query",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseArticleID(args[0])
		if err != nil {
			return err
		}
		query := strings.Join(args[1:], " ")

		size := chunkPageSize
		if size <= 0 {
			size = cfg.API.ChunkPageSize
		}
		page, err := api.NewClient(cfg).SearchArticleChunks(cmd.Context(), query, id, 1, size)
		if err != nil {
			return fmt.Errorf("chunks of article %d: %w", id, err)
		}
		writeChunks(cmd.OutOrStdout(), session.SortByID(page.Items))
		return nil
	},
}

var rawCmd = &cobra.Command{
	Use:   "raw <article-id>",
	Short: "Print an article's stored raw text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseArticleID(args[0])
		if err != nil {
			return err
		}
		text, err := api.NewClient(cfg).FetchArticleRawText(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("raw text of article %d: %w", id, err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "result page, starting at 1")
	searchCmd.Flags().IntVar(&searchPageSize, "page-size", 0, "results per page (default api.search_page_size)")
	chunksCmd.Flags().IntVar(&chunkPageSize, "page-size", 0, "maximum chunks to fetch (default api.chunk_page_size)")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(chunksCmd)
	rootCmd.AddCommand(rawCmd)
}

func parseArticleID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid article id %q", s)
	}
	return id, nil
}

func newTable() *table.Table {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tui.MutedColor)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

func writeArticles(w io.Writer, page *api.Page[api.ScoredArticle], dateFormat string) {
	if len(page.Items) == 0 {
		fmt.Fprintln(w, "No results")
		return
	}

	t := newTable().Headers("ID", "COSINE", "TITLE", "SITE", "DATE")
	for _, item := range page.Items {
		a := item.Article
		t.Row(
			strconv.FormatInt(a.ID, 10),
			relevance.FormatDistance(item.Distance),
			clip(a.DisplayTitle(), titleWidth),
			a.OGSiteName,
			a.PublishDatetime.Format(dateFormat),
		)
	}
	fmt.Fprintln(w, t.String())

	r := page.Range()
	fmt.Fprintln(w, tui.MsgRange(r, page.Total))
}

func writeChunks(w io.Writer, chunks []api.ScoredChunk) {
	if len(chunks) == 0 {
		fmt.Fprintln(w, tui.MsgNoChunks)
		return
	}
	for _, c := range chunks {
		fmt.Fprintf(w, "[%d] %s %s\n", c.Chunk.ID, relevance.FormatDistance(c.Distance), relevance.Classify(c.Distance).Name())
		fmt.Fprintln(w, strings.TrimSpace(c.Chunk.Text))
		fmt.Fprintln(w)
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
