package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/lox/holdem-engine/internal/history"
)

// ReplayCmd re-runs a saved hand through the engine
type ReplayCmd struct {
	Source string `arg:"" help:"Hand JSON file or saved hand id"`
	Quiet  bool   `short:"q" help:"Only report whether the hand replays"`
}

func (c *ReplayCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	entry, _, err := loadEntry(context.Background(), c.Source, cfg.History, logger)
	if err != nil {
		return err
	}

	res, err := history.Replay(entry)
	if err != nil {
		return err
	}
	if !c.Quiet {
		for _, line := range res.Final.ActionLog {
			fmt.Println(line)
		}
		fmt.Println()
		names := make(map[string]string, len(entry.Players))
		for _, p := range entry.Players {
			names[p.ID] = p.Name
		}
		ids := make([]string, 0, len(res.Payoffs))
		for id := range res.Payoffs {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Printf("  %-12s %+d\n", names[id], res.Payoffs[id])
		}
	}

	if err := history.Verify(entry); err != nil {
		return err
	}
	fmt.Printf("Hand %s replays with the recorded payoffs\n", entry.ID)
	return nil
}
