package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

type styles struct {
	Title     lipgloss.Style
	Prompt    lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Pot       lipgloss.Style
	Player    lipgloss.Style
	Active    lipgloss.Style
	Folded    lipgloss.Style
	Board     lipgloss.Style
}

func newStyles() styles {
	return styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		RedCard:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		BlackCard: lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
		Pot:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		Player:    lipgloss.NewStyle().Foreground(lipgloss.Color("#74B9FF")),
		Active:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Folded:    lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Strikethrough(true),
		Board:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// cards formats cards with suit symbols and colours
func (s styles) cards(cards []poker.Card) string {
	if len(cards) == 0 {
		return "[ ]"
	}
	formatted := make([]string, len(cards))
	for i, c := range cards {
		text := c.Rank.String() + c.Suit.Symbol()
		if c.Suit.IsRed() {
			formatted[i] = s.RedCard.Render(text)
		} else {
			formatted[i] = s.BlackCard.Render(text)
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// renderTable draws the board and every seat. Hole cards are shown for
// viewer, and for everyone still in the hand once it is over.
func (s styles) renderTable(st game.GameState, viewer string) string {
	var b strings.Builder

	board := fmt.Sprintf("%s  %s %s  %s",
		strings.ToUpper(st.Stage.String()),
		s.cards(st.CommunityCards),
		s.Pot.Render(fmt.Sprintf("Pot: %d", st.TotalPot())),
		s.Info.Render(fmt.Sprintf("Blinds %d/%d", st.SmallBlind, st.BigBlind)),
	)
	b.WriteString(s.Board.Render(board))
	b.WriteString("\n")

	for i, p := range st.Players {
		b.WriteString(s.seat(st, i, p, viewer))
		b.WriteString("\n")
	}
	return b.String()
}

func (s styles) seat(st game.GameState, i int, p game.Player, viewer string) string {
	var marker string
	switch {
	case p.IsDealer:
		marker = "D "
	case p.IsSmallBlind:
		marker = "SB"
	case p.IsBigBlind:
		marker = "BB"
	default:
		marker = "  "
	}

	name := s.Player.Render(p.Name)
	switch {
	case !st.HandOver && i == st.ActivePlayerIndex:
		name = s.Active.Render("> " + p.Name)
	case p.Status == game.StatusFolded || p.Status == game.StatusOut:
		name = s.Folded.Render(p.Name)
	}

	hole := ""
	if p.Name == viewer || (st.HandOver && p.InHand() && st.CountInHand() > 1) {
		hole = s.cards(p.Hand)
	} else if len(p.Hand) > 0 {
		hole = s.Info.Render("[?? ??]")
	}

	line := fmt.Sprintf("%s %-12s %6d  %s", marker, name, p.Stack, hole)
	if p.Bet > 0 {
		line += "  " + s.Warning.Render(fmt.Sprintf("bet %d", p.Bet))
	}
	if p.Status != game.StatusPlaying {
		line += "  " + s.Info.Render(p.Status.String())
	}
	if p.BestHand != nil && st.HandOver {
		line += "  " + s.Info.Render(p.BestHand.Description)
	}
	return line
}

// describeActions lists the choices the player has
func (s styles) describeActions(valid []game.ValidAction) string {
	parts := make([]string, 0, len(valid))
	for _, va := range valid {
		switch va.Kind {
		case game.KindFold:
			parts = append(parts, s.Error.Render("fold"))
		case game.KindCheck:
			parts = append(parts, s.Success.Render("check"))
		case game.KindCall:
			parts = append(parts, s.Success.Render(fmt.Sprintf("call %d", va.Min)))
		case game.KindBet, game.KindRaise:
			verb := va.Kind.String()
			if va.Min == va.Max {
				parts = append(parts, s.Warning.Render(fmt.Sprintf("%s %d (all-in)", verb, va.Max)))
			} else {
				parts = append(parts, s.Warning.Render(fmt.Sprintf("%s %d-%d", verb, va.Min, va.Max)))
			}
			parts = append(parts, s.Warning.Render(fmt.Sprintf("allin (%d)", va.Max)))
		}
	}
	return strings.Join(parts, " | ")
}
