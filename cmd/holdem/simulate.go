package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/history"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/statistics"
	"github.com/lox/holdem-engine/internal/store"
	"github.com/lox/holdem-engine/internal/table"
)

// SimulateCmd plays bot-only tables concurrently
type SimulateCmd struct {
	Tables int    `short:"t" default:"1" help:"Number of tables to run in parallel"`
	Hands  int    `short:"n" default:"100" help:"Hands per table (0 plays until one seat has every chip)"`
	Seed   int64  `help:"Base seed; each table derives its own (0 uses the configured seed or the clock)"`
	Human  string `default:"tag" help:"Strategy that stands in for human seats"`
	Save   bool   `help:"Record hands in the configured history store instead of memory"`
	Verify bool   `help:"Replay every recorded hand and check its payoffs"`
}

// tableResult is the outcome of one simulated table
type tableResult struct {
	Table  int
	Hands  int
	Stacks map[string]int
	Stats  statistics.Table
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	if c.Tables < 1 {
		return fmt.Errorf("tables must be at least 1, got %d", c.Tables)
	}
	if c.Hands < 0 {
		return fmt.Errorf("hands must not be negative, got %d", c.Hands)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	seed := c.Seed
	if seed == 0 {
		seed = cfg.Table.Seed
	}
	if seed == 0 {
		_, seed = randutil.NewTimeSeeded()
	}
	logger.Info().Int64("seed", seed).Int("tables", c.Tables).Int("hands", c.Hands).Msg("Starting simulation")

	var hands store.Store = store.NewMemoryStore(quartz.NewReal())
	if c.Save {
		if hands, err = openStore(cfg.History, logger); err != nil {
			return err
		}
	}

	notices := log.NewWithOptions(os.Stderr, log.Options{Prefix: "bot", Level: log.WarnLevel})
	timeout, _ := cfg.Table.Timeout()

	var (
		mu      sync.Mutex
		results []tableResult
	)
	start := time.Now()
	eg, egCtx := errgroup.WithContext(ctx)
	for i := 0; i < c.Tables; i++ {
		eg.Go(func() error {
			rng := randutil.Derive(seed, i)
			seats, err := c.botSeats(cfg.Table, rng, notices)
			if err != nil {
				return err
			}
			stats := statistics.Table{}
			session, err := table.NewSession(seats,
				table.WithEngine(game.NewEngine(game.WithRand(rng), game.WithLogger(logger))),
				table.WithActionTimeout(timeout),
				table.WithStore(hands),
				table.WithLogger(logger.With().Int("table", i).Logger()),
				table.WithBlinds(cfg.Table.SmallBlind, cfg.Table.BigBlind),
				table.WithObserver(func(st game.GameState) {
					if st.HandOver {
						stats.AddHand(history.NewEntry(st))
					}
				}),
			)
			if err != nil {
				return err
			}
			played, err := session.Run(egCtx, c.Hands)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}

			mu.Lock()
			results = append(results, tableResult{Table: i, Hands: played, Stacks: session.Stacks(), Stats: stats})
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	slices.SortFunc(results, func(a, b tableResult) int { return a.Table - b.Table })
	c.report(cfg.Table, results, elapsed)

	if c.Verify {
		return verifyStored(ctx, hands)
	}
	return nil
}

func (c *SimulateCmd) botSeats(cfg *config.TableConfig, rng *rand.Rand, notices *log.Logger) ([]table.Seat, error) {
	seats := make([]table.Seat, 0, len(cfg.Seats))
	for i, sc := range cfg.Seats {
		strategy := sc.Strategy
		if strategy == config.HumanStrategy {
			strategy = c.Human
		}
		b, err := bot.New(strategy, randutil.Derive(rng.Int64(), i), notices.WithPrefix(sc.Name))
		if err != nil {
			return nil, fmt.Errorf("seat %q: %w", sc.Name, err)
		}
		seats = append(seats, table.Seat{Name: sc.Name, Stack: sc.Stack, Agent: b})
	}
	return seats, nil
}

func (c *SimulateCmd) report(cfg *config.TableConfig, results []tableResult, elapsed time.Duration) {
	st := newStyles()
	total := 0
	net := make(map[string]int, len(cfg.Seats))
	stats := statistics.Table{}
	for _, r := range results {
		total += r.Hands
		for _, sc := range cfg.Seats {
			net[sc.Name] += r.Stacks[sc.Name] - sc.Stack
		}
		stats.Merge(r.Stats)
	}

	fmt.Println(st.Title.Render(" Simulation complete "))
	fmt.Printf("%d hands on %d tables in %s (%.0f hands/sec)\n",
		total, len(results), elapsed.Round(time.Millisecond), float64(total)/max(elapsed.Seconds(), 1e-9))
	fmt.Println()
	fmt.Printf("  %-12s %-8s %8s %10s %18s %8s\n", "player", "strategy", "chips", "bb/100", "95% ci", "sd wins")
	for _, sc := range cfg.Seats {
		strategy := sc.Strategy
		if strategy == config.HumanStrategy {
			strategy = c.Human
		}
		line := fmt.Sprintf("  %-12s %-8s %+8d", sc.Name, strategy, net[sc.Name])
		if s := stats[sc.Name]; s != nil && s.Hands > 0 {
			low, high := s.ConfidenceInterval95()
			line += fmt.Sprintf(" %+10.1f %s %8d", s.BB100(),
				st.Info.Render(fmt.Sprintf("[%+7.1f, %+7.1f]", low*100, high*100)), s.ShowdownWins)
		}
		fmt.Println(line)
	}
}

// verifyStored replays every stored hand
func verifyStored(ctx context.Context, hands store.Store) error {
	records, err := hands.List(ctx)
	if err != nil {
		return err
	}
	failed := 0
	for _, rec := range records {
		if err := history.Verify(rec.Payload); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "hand %s: %v\n", rec.ID, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d hands failed to replay", failed, len(records))
	}
	fmt.Printf("All %d hands replayed with matching payoffs\n", len(records))
	return nil
}
