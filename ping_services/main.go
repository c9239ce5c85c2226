// Ping the odds feeds and a local fanout server to measure network latency.
//
// Usage:
//
//	go run ./ping_services              # default: 20 requests per endpoint
//	go run ./ping_services -n 50        # 50 requests per endpoint
//	go run ./ping_services --ws         # also ping the fanout websocket
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/charleschow/soccer-props/internal/config"
)

const httpTimeout = 10 * time.Second

type endpoint struct {
	label  string
	url    string
	header http.Header
}

func main() {
	n := flag.Int("n", 20, "Number of requests per endpoint")
	ws := flag.Bool("ws", false, "Also measure fanout WebSocket ping/pong latency")
	flag.Parse()

	cfg := config.Load()

	endpoints := []endpoint{
		{label: "CLOUDBET", url: cfg.CloudbetBaseURL + "/sports", header: http.Header{"X-API-Key": {cfg.CloudbetAPIKey}}},
		{label: "THE ODDS API", url: strings.TrimSuffix(cfg.OddsAPIBaseURL, "/sports") + "/sports?apiKey=" + firstKey(cfg.OddsAPIKeys)},
	}
	for _, ep := range endpoints {
		pingHTTP(ep, *n)
	}
	if *ws {
		pingFanout(fmt.Sprintf("ws://localhost:%d/ws", cfg.FanoutPort), *n)
	}
	fmt.Println()
}

func firstKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

func banner(title string) {
	fmt.Printf("\n%s\n  %s\n%s\n", strings.Repeat("=", 55), title, strings.Repeat("=", 55))
}

func pingHTTP(ep endpoint, n int) {
	banner(ep.label)

	fmt.Println("\n  Cold-start request (DNS + TLS + HTTP):")
	if ms, code, err := measureHTTP(ep, nil); err != nil {
		fmt.Printf("    FAILED: %v\n", err)
	} else {
		fmt.Printf("    %.1f ms  (HTTP %d)\n", ms, code)
	}

	fmt.Printf("\n  Warm HTTP latency (%d requests, keep-alive):\n", n)
	client := &http.Client{Timeout: httpTimeout}
	if _, _, err := measureHTTP(ep, client); err != nil {
		fmt.Printf("  [!] Warm-up request failed: %v\n", err)
		return
	}
	latencies := make([]float64, 0, n)
	pad := len(fmt.Sprintf("%d", n))
	for i := 1; i <= n; i++ {
		ms, code, err := measureHTTP(ep, client)
		if err != nil {
			fmt.Printf("  [%*d/%d]  FAILED: %v\n", pad, i, n, err)
			continue
		}
		latencies = append(latencies, ms)
		fmt.Printf("  [%*d/%d]  %7.1f ms  (HTTP %d)\n", pad, i, n, ms, code)
	}
	printStats(latencies, ep.label)
}

func measureHTTP(ep endpoint, client *http.Client) (ms float64, statusCode int, err error) {
	req, err := http.NewRequest(http.MethodGet, ep.url, nil)
	if err != nil {
		return 0, 0, err
	}
	for k, v := range ep.header {
		req.Header[k] = v
	}
	c := client
	if c == nil {
		c = &http.Client{Timeout: httpTimeout}
	}
	start := time.Now()
	resp, err := c.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()
	return float64(elapsed.Microseconds()) / 1000, resp.StatusCode, nil
}

func pingFanout(wsURL string, n int) {
	banner("FANOUT " + wsURL)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		fmt.Printf("  [!] WebSocket dial failed: %v\n", err)
		return
	}
	defer conn.Close()

	pongCh := make(chan struct{}, 1)
	conn.SetPongHandler(func(string) error {
		select {
		case pongCh <- struct{}{}:
		default:
		}
		return nil
	})

	// control frames are only handled while reading
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	latencies := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		start := time.Now()
		if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
			fmt.Printf("  [!] WS ping failed: %v\n", err)
			break
		}
		select {
		case <-pongCh:
			latencies = append(latencies, float64(time.Since(start).Microseconds())/1000)
		case <-time.After(5 * time.Second):
			fmt.Printf("  [!] WS pong timeout\n")
			i = n
		}
	}
	printStats(latencies, "Fanout WebSocket")
}

func printStats(latencies []float64, label string) {
	if len(latencies) < 2 {
		fmt.Printf("\n  Not enough %s samples for statistics.\n", label)
		return
	}
	sorted := make([]float64, len(latencies))
	copy(sorted, latencies)
	sort.Float64s(sorted)

	mean := 0.0
	for _, v := range latencies {
		mean += v
	}
	mean /= float64(len(latencies))

	variance := 0.0
	for _, v := range latencies {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(latencies) - 1)

	pct := func(p float64) float64 {
		i := int(float64(len(sorted)) * p)
		if i >= len(sorted) {
			i = len(sorted) - 1
		}
		return sorted[i]
	}

	fmt.Printf("\n  --- %s Stats (%d requests) ---\n", label, len(latencies))
	fmt.Printf("  Min:    %7.1f ms\n", sorted[0])
	fmt.Printf("  Max:    %7.1f ms\n", sorted[len(sorted)-1])
	fmt.Printf("  Mean:   %7.1f ms\n", mean)
	fmt.Printf("  Median: %7.1f ms\n", pct(0.5))
	fmt.Printf("  Stdev:  %7.1f ms\n", math.Sqrt(variance))
	fmt.Printf("  p95:    %7.1f ms\n", pct(0.95))
	fmt.Printf("  p99:    %7.1f ms\n", pct(0.99))
}
