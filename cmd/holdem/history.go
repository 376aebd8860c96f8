package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lox/holdem-engine/internal/store"
)

// HistoryCmd lists saved hands, newest first
type HistoryCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum hands to list (0 lists all)"`
}

func (c *HistoryCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	hands, err := openStore(cfg.History, logger)
	if err != nil {
		return err
	}
	records, err := hands.List(context.Background())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No saved hands")
		return nil
	}
	if c.Limit > 0 && len(records) > c.Limit {
		records = records[:c.Limit]
	}
	for _, rec := range records {
		fmt.Println(summarize(rec))
	}
	return nil
}

// summarize renders one record as a single line
func summarize(rec store.Record) string {
	names := make(map[string]string, len(rec.Payload.Players))
	for _, p := range rec.Payload.Players {
		names[p.ID] = p.Name
	}
	var results []string
	for _, p := range rec.Payload.Players {
		if n, ok := rec.Payoffs[p.ID]; ok && n != 0 {
			results = append(results, fmt.Sprintf("%s %+d", names[p.ID], n))
		}
	}
	return fmt.Sprintf("%s  %s  pot %-6d %s",
		rec.CreatedAt.Local().Format(time.DateTime), rec.ID, rec.Payload.FinalPot, strings.Join(results, ", "))
}
