package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"

	"github.com/lox/holdem-engine/internal/game"
)

var (
	errQuit = errors.New("quit")
	errHelp = errors.New("help")
)

// command is one thing the player can type
type command struct {
	name    string
	aliases []string
	usage   string
}

var commands = []command{
	{"fold", []string{"f"}, "Fold your hand"},
	{"check", []string{"x", "k"}, "Check when there is nothing to call"},
	{"call", []string{"c"}, "Call the current bet"},
	{"bet", []string{"b"}, "Bet an amount, e.g. 'bet 80'"},
	{"raise", []string{"r"}, "Raise to a total, e.g. 'raise 240'"},
	{"allin", []string{"all", "a"}, "Push every chip you have"},
	{"help", []string{"?", "h"}, "Show available commands"},
	{"quit", []string{"q", "exit"}, "Leave the table"},
}

// lookupCommand resolves a name or alias
func lookupCommand(word string) (command, bool) {
	for _, c := range commands {
		if c.name == word {
			return c, true
		}
		for _, a := range c.aliases {
			if a == word {
				return c, true
			}
		}
	}
	return command{}, false
}

// parseInput turns a typed line into an engine action. Only the shape of
// the input is checked here; the engine decides whether it is legal.
func parseInput(line string, valid []game.ValidAction) (game.Action, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil, errors.New("type a command, or 'help'")
	}
	cmd, ok := lookupCommand(fields[0])
	if !ok {
		return nil, fmt.Errorf("unknown command: %s. Type 'help' for available commands", fields[0])
	}

	amount := func() (int, error) {
		if len(fields) < 2 {
			return 0, fmt.Errorf("specify an amount: '%s <amount>'", cmd.name)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid amount: %s", fields[1])
		}
		return n, nil
	}

	switch cmd.name {
	case "fold":
		return game.Fold{}, nil
	case "check":
		return game.Check{}, nil
	case "call":
		return game.Call{}, nil
	case "bet":
		n, err := amount()
		if err != nil {
			return nil, err
		}
		return game.Bet{Amount: n}, nil
	case "raise":
		n, err := amount()
		if err != nil {
			return nil, err
		}
		return game.Raise{Amount: n}, nil
	case "allin":
		return allIn(valid)
	case "help":
		return nil, errHelp
	default:
		return nil, errQuit
	}
}

// allIn picks the action that commits the whole stack
func allIn(valid []game.ValidAction) (game.Action, error) {
	for _, kind := range []game.ActionKind{game.KindRaise, game.KindBet} {
		for _, va := range valid {
			if va.Kind == kind {
				return kind.ToAction(va.Max), nil
			}
		}
	}
	for _, va := range valid {
		if va.Kind == game.KindCall {
			return game.Call{}, nil
		}
	}
	return nil, errors.New("you cannot go all-in now")
}

// humanAgent reads decisions from the terminal
type humanAgent struct {
	name   string
	rl     *readline.Instance
	out    io.Writer
	styles styles
	engine *game.Engine
	logger *log.Logger
	quit   context.CancelFunc
	lines  chan readResult
}

type readResult struct {
	line string
	err  error
}

func newHumanAgent(name string, engine *game.Engine, st styles, logger *log.Logger, quit context.CancelFunc) (*humanAgent, error) {
	completer := readline.NewPrefixCompleter()
	for _, c := range commands {
		completer.Children = append(completer.Children, readline.PcItem(c.name))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          st.Prompt.Render("holdem> "),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("starting prompt: %w", err)
	}

	h := &humanAgent{
		name:   name,
		rl:     rl,
		out:    rl.Stdout(),
		styles: st,
		engine: engine,
		logger: logger,
		quit:   quit,
		lines:  make(chan readResult),
	}
	go h.readLoop()
	return h, nil
}

// readLoop feeds typed lines to Decide. Lines typed after a decision timed
// out are picked up by the next one.
func (h *humanAgent) readLoop() {
	for {
		line, err := h.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(h.out, h.styles.Info.Render("Use 'quit' to exit"))
			continue
		}
		h.lines <- readResult{line, err}
		if err != nil {
			return
		}
	}
}

func (h *humanAgent) Close() error {
	return h.rl.Close()
}

func (h *humanAgent) Decide(ctx context.Context, st game.GameState, valid []game.ValidAction) (game.Action, error) {
	me := st.Players[st.ActivePlayerIndex]
	h.rl.SetPrompt(h.styles.Prompt.Render(fmt.Sprintf("%s %d> ", h.styles.cards(me.Hand), me.Stack)))
	fmt.Fprintln(h.out)
	fmt.Fprintf(h.out, "Actions: %s\n", h.styles.describeActions(valid))

	for {
		var res readResult
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res = <-h.lines:
		}
		if res.err != nil {
			h.quit()
			return nil, errQuit
		}
		if strings.TrimSpace(res.line) == "" {
			continue
		}

		action, err := parseInput(res.line, valid)
		switch {
		case errors.Is(err, errQuit):
			h.logger.Info("Leaving the table")
			h.quit()
			return nil, errQuit
		case errors.Is(err, errHelp):
			h.printHelp()
			continue
		case err != nil:
			fmt.Fprintln(h.out, h.styles.Error.Render(err.Error()))
			continue
		}

		// Ask the engine first so an illegal choice can be retried
		if _, err := h.engine.Try(st, action); err != nil {
			fmt.Fprintln(h.out, h.styles.Error.Render(fmt.Sprintf("Cannot %s: %v", action, err)))
			continue
		}
		return action, nil
	}
}

func (h *humanAgent) printHelp() {
	for _, c := range commands {
		fmt.Fprintf(h.out, "  %-6s %-12s %s\n", c.name, h.styles.Info.Render(strings.Join(c.aliases, ",")), c.usage)
	}
}
