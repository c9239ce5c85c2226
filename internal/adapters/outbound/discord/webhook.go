package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charleschow/soccer-props/internal/core/pricing"
	"github.com/charleschow/soccer-props/internal/events"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

const (
	sendTimeout = 10 * time.Second
	previewBets = 12
)

var ErrRateLimited = errors.New("discord rate limited")

type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: sendTimeout},
	}
}

func (n *Notifier) Enabled() bool { return n.webhookURL != "" }

type Embed struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
	Footer      *Footer `json:"footer,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type Footer struct {
	Text string `json:"text"`
}

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

func (n *Notifier) SendText(ctx context.Context, msg string) error {
	return n.send(ctx, webhookPayload{Content: msg})
}

func (n *Notifier) SendEmbed(ctx context.Context, embed Embed) error {
	if embed.Timestamp == "" {
		embed.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return n.send(ctx, webhookPayload{Embeds: []Embed{embed}})
}

func (n *Notifier) send(ctx context.Context, payload webhookPayload) error {
	if !n.Enabled() {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		telemetry.Warnf("discord: rate limited")
		return ErrRateLimited
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook: status=%d", resp.StatusCode)
	}
	return nil
}

const (
	ColorGreen  = 0x2ECC71
	ColorYellow = 0xF1C40F
)

// SheetEmbed summarises a priced sheet: header fields plus the first bets
// in preview order.
func SheetEmbed(sh pricing.Sheet) Embed {
	color := ColorGreen
	if len(sh.Bets) == 0 {
		color = ColorYellow
	}

	bets := append([]pricing.BetRecord(nil), sh.Bets...)
	pricing.SortForPreview(bets)
	var b strings.Builder
	for i, bet := range bets {
		if i == previewBets {
			fmt.Fprintf(&b, "… and %d more", len(bets)-previewBets)
			break
		}
		fmt.Fprintf(&b, "`%-7s` %s %s %s\n", bet.Price, bet.Subject, bet.Market, bet.Detail)
	}

	kickoff := "unknown"
	if !sh.Kickoff.IsZero() {
		kickoff = sh.Kickoff.UTC().Format("Mon 02 Jan 15:04 UTC")
	}

	return Embed{
		Title:       "Sheet priced: " + sh.EventName,
		Description: b.String(),
		Color:       color,
		Fields: []Field{
			{Name: "Competition", Value: orDash(sh.Competition), Inline: true},
			{Name: "Kickoff", Value: kickoff, Inline: true},
			{Name: "Margin", Value: fmt.Sprintf("%.1f%%", sh.MarginPct), Inline: true},
			{Name: "Bets", Value: fmt.Sprintf("%d", len(sh.Bets)), Inline: true},
		},
		Footer:    &Footer{Text: sh.ID},
		Timestamp: sh.PricedAt.UTC().Format(time.RFC3339),
	}
}

func (n *Notifier) SheetAlert(ctx context.Context, sh pricing.Sheet) error {
	return n.SendEmbed(ctx, SheetEmbed(sh))
}

// Subscribe posts every priced sheet. A disabled notifier subscribes nothing.
func (n *Notifier) Subscribe(bus *events.Bus) {
	if !n.Enabled() {
		return
	}
	bus.Subscribe(events.EventSheetPriced, func(e events.Event) error {
		sp, ok := e.Payload.(events.SheetPriced)
		if !ok {
			return fmt.Errorf("discord: unexpected payload %T", e.Payload)
		}
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		return n.SheetAlert(ctx, sp.Sheet)
	})
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
