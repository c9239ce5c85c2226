package display

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/charleschow/soccer-props/internal/core/pricing"
)

// PrintSheet writes a priced sheet grouped by subject in preview order.
// The sheet's own bet order is left untouched.
func PrintSheet(w io.Writer, sh pricing.Sheet) {
	bets := slices.Clone(sh.Bets)
	pricing.SortForPreview(bets)

	fmt.Fprintf(w, "\n[SHEET %s]  %s  margin=%.1f%%  bets=%d\n", sh.ID, sh.EventName, sh.MarginPct, len(bets))
	fmt.Fprintf(w, "%s\n", dividerLight)

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	subject := ""
	for _, b := range bets {
		if b.Subject != subject {
			if subject != "" {
				fmt.Fprintln(tw)
			}
			subject = b.Subject
			fmt.Fprintf(tw, "  %s\t\t\n", strings.ToUpper(subject))
		}
		fmt.Fprintf(tw, "    %s\t%s\t%s\n", b.Market, b.Detail, b.Price)
	}
	tw.Flush()
	fmt.Fprintf(w, "%s\n", dividerLight)
}
