package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charleschow/soccer-props/internal/archive"
	"github.com/charleschow/soccer-props/internal/core/display"
)

func main() {
	n := flag.Int("n", 10, "number of recent sheets to display")
	dbPath := flag.String("db", "data/sheets.db", "path to the sqlite sheet archive")
	sheetID := flag.String("sheet", "", "print every bet of one sheet")
	flag.Parse()

	st, err := archive.OpenSQLite(*dbPath, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open archive: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if *sheetID != "" {
		sh, err := st.Sheet(ctx, *sheetID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		display.PrintSheet(os.Stdout, sh)
		return
	}

	recent, err := st.Recent(ctx, *n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if len(recent) == 0 {
		fmt.Println("(no data)")
		return
	}

	fmt.Printf("=== Sheet archive ===\nShowing last %d:\n", len(recent))
	cols := []string{"priced_at", "sheet", "event", "name", "competition", "margin", "bets"}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(cols, "\t"))
	fmt.Fprintln(w, strings.Repeat("----\t", len(cols)))
	for i := len(recent) - 1; i >= 0; i-- {
		s := recent[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f%%\t%d\n",
			s.PricedAt.Local().Format(time.DateTime), s.ID, s.EventID, s.EventName, s.Competition, s.MarginPct, s.Bets)
	}
	w.Flush()
}
