package model

import (
	"errors"
	"fmt"
)

// ErrInvalidRoster is returned when a game's sides are not exactly two distinct
// players each, drawn from four distinct players.
var ErrInvalidRoster = errors.New("invalid roster")

// ValidateRoster checks the 2+2 distinct players invariant.
func ValidateRoster(sideA, sideB Pair) error {
	seen := make(map[string]struct{}, 4)
	for _, id := range [...]string{sideA[0], sideA[1], sideB[0], sideB[1]} {
		if id == "" {
			return fmt.Errorf("%w: empty player id", ErrInvalidRoster)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: player %s appears more than once", ErrInvalidRoster, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// HasValidRoster reports whether g satisfies the roster invariant. Aggregation
// uses it to skip legacy rows instead of failing.
func (g *Game) HasValidRoster() bool {
	return ValidateRoster(g.SideA, g.SideB) == nil
}

// HasResult reports whether g is finalized with a winner on record. Legacy or
// merged rows missing a winner are skipped by the folds.
func (g *Game) HasResult() bool {
	return g.Finalized && g.WinnerSide.Valid()
}

// Players returns the four rostered ids, side A first.
func (g *Game) Players() []string {
	return []string{g.SideA[0], g.SideA[1], g.SideB[0], g.SideB[1]}
}

// SideOf returns the side playerID is on, or false if they are not rostered.
func (g *Game) SideOf(playerID string) (Side, bool) {
	switch playerID {
	case g.SideA[0], g.SideA[1]:
		return SideA, true
	case g.SideB[0], g.SideB[1]:
		return SideB, true
	}
	return "", false
}

// Pair returns the roster of side s.
func (g *Game) Pair(s Side) Pair {
	if s == SideA {
		return g.SideA
	}
	return g.SideB
}

// Teammate returns the other player on playerID's side.
func (g *Game) Teammate(playerID string) string {
	side, ok := g.SideOf(playerID)
	if !ok {
		return ""
	}
	p := g.Pair(side)
	if p[0] == playerID {
		return p[1]
	}
	return p[0]
}

// Opponents returns the pair on the side opposite playerID.
func (g *Game) Opponents(playerID string) Pair {
	side, ok := g.SideOf(playerID)
	if !ok {
		return Pair{}
	}
	return g.Pair(side.Other())
}

// Margin is the absolute final score difference.
func (g *Game) Margin() int {
	d := g.FinalScoreA - g.FinalScoreB
	if d < 0 {
		return -d
	}
	return d
}
