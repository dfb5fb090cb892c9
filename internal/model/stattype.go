package model

import "fmt"

// StatType is the closed set of counters tracked per player per game.
type StatType string

const (
	TwoMade    StatType = "2PM"
	TwoMiss    StatType = "2PMISS"
	ThreeMade  StatType = "3PM"
	ThreeMiss  StatType = "3PMISS"
	Assist     StatType = "AST"
	OffRebound StatType = "OREB"
	DefRebound StatType = "DREB"
	Block      StatType = "BLK"
	Steal      StatType = "STL"
)

// StatTypes lists every valid stat type in display order.
var StatTypes = []StatType{TwoMade, TwoMiss, ThreeMade, ThreeMiss, Assist, OffRebound, DefRebound, Block, Steal}

// Valid reports whether s is one of the known stat types.
func (s StatType) Valid() bool {
	switch s {
	case TwoMade, TwoMiss, ThreeMade, ThreeMiss, Assist, OffRebound, DefRebound, Block, Steal:
		return true
	}
	return false
}

// Points is the scoring value of a single increment of s.
func (s StatType) Points() int {
	switch s {
	case TwoMade:
		return 2
	case ThreeMade:
		return 3
	}
	return 0
}

// ParseStatType accepts the canonical upper-case codes.
func ParseStatType(raw string) (StatType, error) {
	s := StatType(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown stat type %q", raw)
	}
	return s, nil
}
