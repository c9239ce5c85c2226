package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charleschow/soccer-props/internal/config"
	"github.com/charleschow/soccer-props/internal/core/display"
	"github.com/charleschow/soccer-props/internal/events"
	"github.com/charleschow/soccer-props/internal/fanout"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

func main() {
	cfg := config.Load()
	addr := flag.String("addr", fmt.Sprintf("localhost:%d", cfg.FanoutPort), "fanout server host:port")
	eventID := flag.String("event", "", "only show sheets for this fixture id")
	flag.Parse()

	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))

	bus := events.NewBus()
	display.NewObserver(os.Stdout).Subscribe(bus)
	bus.Subscribe(events.EventCatalogRefreshed, func(e events.Event) error {
		if cr, ok := e.Payload.(events.CatalogRefreshed); ok {
			telemetry.Infof("catalog refreshed  events=%d  competitions=%d", cr.Events, cr.Competitions)
		}
		return nil
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	telemetry.Infof("Watching %s for priced sheets (ctrl-c to stop)", *addr)
	fanout.NewClient(*addr, *eventID, bus).ConnectWithRetry(ctx)
}
