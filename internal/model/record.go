package model

import "time"

// RecordVersion is the output schema version.
const RecordVersion = "2.0"

type Metadata struct {
	Map         string  `json:"map"`
	Duration    float64 `json:"duration"`
	TickRate    float64 `json:"tickrate"`
	TotalTicks  int     `json:"totalTicks"`
	MatchDate   *string `json:"matchDate"`
	ServerName  string  `json:"serverName,omitempty"`
	DemoVersion string  `json:"demoVersion,omitempty"`
}

type Player struct {
	SteamID string `json:"steamId"`
	Name    string `json:"name"`
	Team    int    `json:"team"`
}

// ParsingStats counts the entries produced per category.
type ParsingStats struct {
	TotalRounds            int `json:"totalRounds"`
	TotalKills             int `json:"totalKills"`
	TotalDamages           int `json:"totalDamages"`
	TotalGrenades          int `json:"totalGrenades"`
	TotalBlinds            int `json:"totalBlinds"`
	TotalBombEvents        int `json:"totalBombEvents"`
	TotalWeaponFires       int `json:"totalWeaponFires"`
	TotalPositionSnapshots int `json:"totalPositionSnapshots"`
	TotalPurchases         int `json:"totalPurchases"`
	TotalFailedCategories  int `json:"totalFailedCategories"`
}

// Record is the complete analytical record of one replay.
type Record struct {
	Version        string             `json:"version"`
	Metadata       Metadata           `json:"metadata"`
	Players        []Player           `json:"players"`
	Rounds         []RoundBoundary    `json:"rounds"`
	Kills          []Kill             `json:"kills"`
	Damages        []Damage           `json:"damages"`
	Grenades       []Grenade          `json:"grenades"`
	PlayerBlinds   []PlayerBlind      `json:"playerBlinds"`
	BombEvents     []BombEvent        `json:"bombEvents"`
	EconomyByRound []EconomyRound     `json:"economyByRound"`
	Purchases      []Purchase         `json:"purchases"`
	WeaponFires    []WeaponFire       `json:"weaponFires,omitempty"`
	Positions      []PositionSnapshot `json:"positions,omitempty"`
	Clutches       []Clutch           `json:"clutches"`
	EntryDuels     []EntryDuel        `json:"entryDuels"`
	Trades         []Trade            `json:"trades"`
	ParsingStats   ParsingStats       `json:"parsingStats"`
}

// Score returns the number of rounds won by each side.
func (r *Record) Score() (ctScore, tScore int) {
	for _, rb := range r.Rounds {
		switch rb.Winner {
		case TeamCT:
			ctScore++
		case TeamT:
			tScore++
		}
	}
	return
}

// MatchSummary is a lightweight record for list/show commands.
type MatchSummary struct {
	DemoHash   string
	AnalysisID string
	MapName    string
	MatchDate  string
	ParsedAt   string
	Tickrate   float64
	Rounds     int
	CTScore    int
	TScore     int
	Kills      int
	Failed     int
}

// Summary condenses r into the row stored for list/show. A nil match date is
// stored as the empty string.
func (r *Record) Summary(hash, analysisID string, parsedAt time.Time) MatchSummary {
	ct, t := r.Score()
	date := ""
	if r.Metadata.MatchDate != nil {
		date = *r.Metadata.MatchDate
	}
	return MatchSummary{
		DemoHash:   hash,
		AnalysisID: analysisID,
		MapName:    r.Metadata.Map,
		MatchDate:  date,
		ParsedAt:   parsedAt.UTC().Format(time.RFC3339),
		Tickrate:   r.Metadata.TickRate,
		Rounds:     len(r.Rounds),
		CTScore:    ct,
		TScore:     t,
		Kills:      r.ParsingStats.TotalKills,
		Failed:     r.ParsingStats.TotalFailedCategories,
	}
}
