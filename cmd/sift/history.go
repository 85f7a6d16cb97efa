package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pders01/sift/internal/relevance"
)

var (
	historyLimit    int
	historyArticles bool
)

var errHistoryDisabled = errors.New("history is disabled (history.enabled = false)")

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent queries, or opened articles with --articles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		if store == nil {
			return errHistoryDisabled
		}
		defer store.Close()

		w := cmd.OutOrStdout()
		if historyArticles {
			entries, err := store.RecentArticles(historyLimit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(w, "No articles opened yet")
				return nil
			}
			t := newTable().Headers("ID", "TITLE", "SITE", "QUERY", "OPENED")
			for _, e := range entries {
				t.Row(strconv.FormatInt(e.ID, 10), clip(e.Title, titleWidth), e.SiteName, e.Query, e.OpenedAt.Format(cfg.UI.DateFormat))
			}
			fmt.Fprintln(w, t.String())
			return nil
		}

		entries, err := store.RecentQueries(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(w, "No queries yet")
			return nil
		}
		t := newTable().Headers("QUERY", "RESULTS", "RUNS", "LAST RUN")
		for _, e := range entries {
			t.Row(e.Query, strconv.Itoa(e.Total), strconv.Itoa(e.Count), e.LastRun.Format(cfg.UI.DateFormat))
		}
		fmt.Fprintln(w, t.String())
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded queries and articles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		if store == nil {
			return errHistoryDisabled
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	},
}

var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "Show the cosine distance ranges used to color results",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := newTable().Headers("BUCKET", "FROM", "BELOW")
		for _, b := range relevance.Buckets {
			lo, hi := b.Bounds()
			below := "-"
			if !math.IsInf(hi, 1) {
				below = relevance.FormatDistance(hi)
			}
			t.Row(b.Name(), relevance.FormatDistance(lo), below)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.String())
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to list")
	historyCmd.Flags().BoolVar(&historyArticles, "articles", false, "list opened articles instead of queries")
	historyCmd.AddCommand(historyClearCmd)

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(bucketsCmd)
}
