package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pable/cs-replay-analyzer/internal/model"
)

// DemoExists returns true if an analysis of the demo with the given hash is stored.
func (db *DB) DemoExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM demos WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveAnalysis stores the summary and the derived events of rec in one
// transaction. A previous analysis of the same demo is replaced.
func (db *DB) SaveAnalysis(summary model.MatchSummary, rec *model.Record) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := clearDerived(tx, summary.DemoHash); err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO demos(hash, analysis_id, map_name, match_date, parsed_at, tickrate, rounds, ct_score, t_score, kills, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.DemoHash, summary.AnalysisID, summary.MapName, summary.MatchDate, summary.ParsedAt,
		summary.Tickrate, summary.Rounds, summary.CTScore, summary.TScore, summary.Kills, summary.Failed,
	)
	if err != nil {
		return fmt.Errorf("insert demo: %w", err)
	}

	if rec != nil {
		if err := insertPlayers(tx, summary.DemoHash, rec.Players); err != nil {
			return err
		}
		if err := insertRounds(tx, summary.DemoHash, rec.Rounds); err != nil {
			return err
		}
		if err := insertEntryDuels(tx, summary.DemoHash, rec.EntryDuels); err != nil {
			return err
		}
		if err := insertTrades(tx, summary.DemoHash, rec.Trades); err != nil {
			return err
		}
		if err := insertClutches(tx, summary.DemoHash, rec.Clutches); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertPlayers(tx *sql.Tx, hash string, players []model.Player) error {
	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO players(demo_hash, steam_id, name, team, seq)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range players {
		if _, err := stmt.Exec(hash, p.SteamID, p.Name, p.Team, i); err != nil {
			return fmt.Errorf("insert player %s: %w", p.SteamID, err)
		}
	}
	return nil
}

func insertRounds(tx *sql.Tx, hash string, rounds []model.RoundBoundary) error {
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO round_boundaries(demo_hash, round_number, winner, reason, end_tick)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rounds {
		if _, err := stmt.Exec(hash, r.RoundNumber, int(r.Winner), r.Reason, r.EndTick); err != nil {
			return fmt.Errorf("insert round %d: %w", r.RoundNumber, err)
		}
	}
	return nil
}

func insertEntryDuels(tx *sql.Tx, hash string, duels []model.EntryDuel) error {
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO entry_duels(demo_hash, round, tick, winner_id, loser_id, weapon, headshot, distance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range duels {
		_, err := stmt.Exec(hash, d.Round, d.Tick, d.WinnerID, d.LoserID, d.Weapon, boolInt(d.Headshot), d.Distance)
		if err != nil {
			return fmt.Errorf("insert entry duel round %d: %w", d.Round, err)
		}
	}
	return nil
}

func insertTrades(tx *sql.Tx, hash string, trades []model.Trade) error {
	stmt, err := tx.Prepare(`
		INSERT INTO trades(demo_hash, seq, round, original_kill_tick, trade_tick, time_to_trade,
			original_victim_id, original_killer_id, trader_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, tr := range trades {
		_, err := stmt.Exec(hash, i, tr.Round, tr.OriginalKillTick, tr.TradeTick, tr.TimeToTrade,
			tr.OriginalVictimID, tr.OriginalKillerID, tr.TraderID)
		if err != nil {
			return fmt.Errorf("insert trade %d: %w", i, err)
		}
	}
	return nil
}

func insertClutches(tx *sql.Tx, hash string, clutches []model.Clutch) error {
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO clutches(demo_hash, round, steam_id, kills_in_clutch, start_tick, won)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range clutches {
		if _, err := stmt.Exec(hash, c.Round, c.SteamID, c.KillsInClutch, c.StartTick, boolInt(c.Won)); err != nil {
			return fmt.Errorf("insert clutch round %d: %w", c.Round, err)
		}
	}
	return nil
}

// DeleteDemo removes a stored analysis and its derived events.
// It reports whether a demo row was deleted.
func (db *DB) DeleteDemo(hash string) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if err := clearDerived(tx, hash); err != nil {
		return false, err
	}
	res, err := tx.Exec("DELETE FROM demos WHERE hash = ?", hash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

var derivedTables = []string{"players", "round_boundaries", "entry_duels", "trades", "clutches"}

func clearDerived(tx *sql.Tx, hash string) error {
	for _, table := range derivedTables {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE demo_hash = ?", hash); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

const summaryCols = `hash, analysis_id, map_name, match_date, parsed_at, tickrate, rounds, ct_score, t_score, kills, failed`

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (model.MatchSummary, error) {
	var s model.MatchSummary
	err := row.Scan(&s.DemoHash, &s.AnalysisID, &s.MapName, &s.MatchDate, &s.ParsedAt,
		&s.Tickrate, &s.Rounds, &s.CTScore, &s.TScore, &s.Kills, &s.Failed)
	return s, err
}

// ListDemos returns all stored analyses, most recent match first. Demos
// without a match date sort by parse time.
func (db *DB) ListDemos() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`SELECT ` + summaryCols + ` FROM demos
		ORDER BY CASE WHEN match_date = '' THEN parsed_at ELSE match_date END DESC, hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetDemoByPrefix returns the first demo whose hash starts with prefix, or nil.
func (db *DB) GetDemoByPrefix(prefix string) (*model.MatchSummary, error) {
	row := db.conn.QueryRow(`SELECT `+summaryCols+` FROM demos WHERE hash LIKE ? ORDER BY hash LIMIT 1`, prefix+"%")
	s, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetPlayers returns the players stored for hash in first-seen order.
func (db *DB) GetPlayers(hash string) ([]model.Player, error) {
	rows, err := db.conn.Query(`
		SELECT steam_id, name, team FROM players WHERE demo_hash = ? ORDER BY seq`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Player{}
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.SteamID, &p.Name, &p.Team); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetRounds returns the round boundaries stored for hash, in round order.
func (db *DB) GetRounds(hash string) ([]model.RoundBoundary, error) {
	rows, err := db.conn.Query(`
		SELECT round_number, winner, reason, end_tick FROM round_boundaries
		WHERE demo_hash = ? ORDER BY round_number`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.RoundBoundary{}
	for rows.Next() {
		var r model.RoundBoundary
		var winner int
		if err := rows.Scan(&r.RoundNumber, &winner, &r.Reason, &r.EndTick); err != nil {
			return nil, err
		}
		r.Winner = model.Team(winner)
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetEntryDuels returns the entry duels stored for hash, in round order.
func (db *DB) GetEntryDuels(hash string) ([]model.EntryDuel, error) {
	rows, err := db.conn.Query(`
		SELECT round, tick, winner_id, loser_id, weapon, headshot, distance FROM entry_duels
		WHERE demo_hash = ? ORDER BY round`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.EntryDuel{}
	for rows.Next() {
		var d model.EntryDuel
		var hs int
		if err := rows.Scan(&d.Round, &d.Tick, &d.WinnerID, &d.LoserID, &d.Weapon, &hs, &d.Distance); err != nil {
			return nil, err
		}
		d.Headshot = hs == 1
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetTrades returns the trades stored for hash in detection order.
func (db *DB) GetTrades(hash string) ([]model.Trade, error) {
	rows, err := db.conn.Query(`
		SELECT round, original_kill_tick, trade_tick, time_to_trade,
			original_victim_id, original_killer_id, trader_id
		FROM trades WHERE demo_hash = ? ORDER BY seq`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Trade{}
	for rows.Next() {
		var tr model.Trade
		if err := rows.Scan(&tr.Round, &tr.OriginalKillTick, &tr.TradeTick, &tr.TimeToTrade,
			&tr.OriginalVictimID, &tr.OriginalKillerID, &tr.TraderID); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// GetClutches returns the clutches stored for hash, in round order.
func (db *DB) GetClutches(hash string) ([]model.Clutch, error) {
	rows, err := db.conn.Query(`
		SELECT round, steam_id, kills_in_clutch, start_tick, won FROM clutches
		WHERE demo_hash = ? ORDER BY round`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Clutch{}
	for rows.Next() {
		var c model.Clutch
		var won int
		if err := rows.Scan(&c.Round, &c.SteamID, &c.KillsInClutch, &c.StartTick, &won); err != nil {
			return nil, err
		}
		c.Won = won == 1
		out = append(out, c)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary read query and returns column names and rows
// rendered as strings. NULL renders as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch v := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(v)
			default:
				row[i] = fmt.Sprint(v)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
