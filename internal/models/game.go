package models

import (
	"time"
)

// MarketKind identifies the bookmaker market a quote belongs to.
type MarketKind string

const (
	MarketHeadToHead MarketKind = "h2h"
	MarketSpread     MarketKind = "spreads"
)

// Outcome is a single priced side within a bookmaker market. Price is a signed
// American-odds integer and is never zero in a valid feed. Point is populated
// only for spread markets.
type Outcome struct {
	Name  string   `json:"name" validate:"required"`
	Price int      `json:"price" validate:"required"`
	Point *float64 `json:"point,omitempty"`
}

// Market groups the outcomes a bookmaker prices under one market key.
type Market struct {
	Key        MarketKind `json:"key" validate:"required,oneof=h2h spreads"`
	LastUpdate time.Time  `json:"last_update"`
	Outcomes   []Outcome  `json:"outcomes"`
}

// Bookmaker is one book's view of a game across its markets.
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title" validate:"required"`
	Markets []Market `json:"markets"`
}

// GameEvent is a single scheduled game from the odds feed. It is constructed
// once from the feed and never mutated afterwards; commence times are UTC.
type GameEvent struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	HomeTeam     string      `json:"home_team" validate:"required"`
	AwayTeam     string      `json:"away_team" validate:"required"`
	CommenceTime time.Time   `json:"commence_time" validate:"required"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// CommencesOn reports whether the game starts on the given calendar date in UTC.
// Comparison is by date, not wall-clock proximity.
func (g *GameEvent) CommencesOn(date time.Time) bool {
	gy, gm, gd := g.CommenceTime.UTC().Date()
	dy, dm, dd := date.UTC().Date()
	return gy == dy && gm == dm && gd == dd
}
