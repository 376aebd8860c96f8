package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/table"
)

// PlayCmd seats the configured players and plays until the human quits or
// the table breaks
type PlayCmd struct {
	Hands   int  `help:"Stop after this many hands (0 uses the configured count, which defaults to unlimited)"`
	Restore bool `help:"Start from the stacks of the last saved hand"`
	NoSave  bool `name:"no-save" help:"Do not record finished hands"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	// Routine table logging would interleave with the prompt
	if logger.GetLevel() < zerolog.WarnLevel {
		logger = logger.Level(zerolog.WarnLevel)
	}
	notices := log.NewWithOptions(os.Stderr, log.Options{Prefix: "holdem"})

	ctx, cancel := signalContext(logger)
	defer cancel()

	rng := seededRand(cfg.Table.Seed, notices)
	engine := game.NewEngine(game.WithRand(rng), game.WithLogger(logger))
	st := newStyles()

	seats, human, err := buildSeats(cfg.Table, engine, rng, st, notices, cancel)
	if err != nil {
		return err
	}
	if human != nil {
		defer human.Close()
	}

	out := io.Writer(os.Stdout)
	viewer := ""
	if human != nil {
		out = human.out
		viewer = human.name
	}

	timeout, _ := cfg.Table.Timeout()
	opts := []table.Option{
		table.WithEngine(engine),
		table.WithActionTimeout(timeout),
		table.WithLogger(logger),
		table.WithBlinds(cfg.Table.SmallBlind, cfg.Table.BigBlind),
		table.WithObserver(newNarrator(out, st, viewer).observe),
	}
	if !c.NoSave {
		hands, err := openStore(cfg.History, logger)
		if err != nil {
			return err
		}
		opts = append(opts, table.WithStore(hands))
	}

	session, err := table.NewSession(seats, opts...)
	if err != nil {
		return err
	}
	if c.Restore {
		if err := session.RestoreStacks(ctx); err != nil {
			notices.Warn("Could not restore stacks", "err", err)
		}
	}

	fmt.Fprintln(out, st.Title.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))
	fmt.Fprintln(out)

	limit := c.Hands
	if limit == 0 {
		limit = cfg.Table.Hands
	}
	played, err := session.Run(ctx, limit)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d hands played\n", played)
	for _, p := range session.State().Players {
		fmt.Fprintf(out, "  %-12s %d\n", p.Name, p.Stack)
	}
	return err
}

func seededRand(seed int64, notices *log.Logger) *rand.Rand {
	if seed != 0 {
		notices.Debug("Using deterministic seed", "seed", seed)
		return randutil.New(seed)
	}
	rng, seed := randutil.NewTimeSeeded()
	notices.Debug("Using random seed", "seed", seed)
	return rng
}

// buildSeats creates an agent for every configured seat
func buildSeats(cfg *config.TableConfig, engine *game.Engine, rng *rand.Rand, st styles, notices *log.Logger, quit context.CancelFunc) ([]table.Seat, *humanAgent, error) {
	seats := make([]table.Seat, 0, len(cfg.Seats))
	var human *humanAgent
	for i, sc := range cfg.Seats {
		var agent table.Agent
		if sc.Strategy == config.HumanStrategy {
			h, err := newHumanAgent(sc.Name, engine, st, notices, quit)
			if err != nil {
				return nil, nil, err
			}
			human, agent = h, h
		} else {
			b, err := bot.New(sc.Strategy, randutil.Derive(rng.Int64(), i), notices.WithPrefix(sc.Name))
			if err != nil {
				return nil, nil, fmt.Errorf("seat %q: %w", sc.Name, err)
			}
			agent = b
		}
		seats = append(seats, table.Seat{Name: sc.Name, Stack: sc.Stack, Agent: agent})
	}
	return seats, human, nil
}

// narrator prints the action log as the hand progresses
type narrator struct {
	out     io.Writer
	styles  styles
	viewer  string
	handID  string
	printed int
}

func newNarrator(out io.Writer, st styles, viewer string) *narrator {
	return &narrator{out: out, styles: st, viewer: viewer}
}

func (n *narrator) observe(st game.GameState) {
	if st.HandID != n.handID {
		n.handID, n.printed = st.HandID, 0
		fmt.Fprintln(n.out)
	}
	for _, line := range st.ActionLog[min(n.printed, len(st.ActionLog)):] {
		if strings.HasPrefix(line, "---") {
			line = n.styles.Info.Render(line)
		}
		fmt.Fprintln(n.out, line)
	}
	n.printed = len(st.ActionLog)

	active := st.ActivePlayer()
	if st.HandOver || (active != nil && active.Name == n.viewer) {
		fmt.Fprint(n.out, n.styles.renderTable(st, n.viewer))
	}
}
