package events

import "github.com/charleschow/soccer-props/internal/core/pricing"

// CatalogRefreshed is published after the merged feed is reloaded.
type CatalogRefreshed struct {
	Events       int            `json:"events"`
	Competitions int            `json:"competitions"`
	BySource     map[string]int `json:"by_source"`
}

// SheetPriced is published once per priced event. Subscribers print,
// archive and broadcast it.
type SheetPriced struct {
	Sheet pricing.Sheet `json:"sheet"`
}
