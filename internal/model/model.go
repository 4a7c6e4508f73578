// Package model holds the data types shared by the replay analysis core:
// round boundaries, raw and enriched events, state samples, derived tactical
// events, and the assembled output record.
package model

import "github.com/golang/geo/r3"

// Team represents which side a player is on. Values follow the game's team_num.
type Team int

const (
	TeamUnknown    Team = 0
	TeamSpectators Team = 1
	TeamT          Team = 2
	TeamCT         Team = 3
)

func (t Team) String() string {
	switch t {
	case TeamT:
		return "T"
	case TeamCT:
		return "CT"
	default:
		return "?"
	}
}

// Round end reason codes, as emitted by the game.
const (
	ReasonUnknown      = 0
	ReasonBombExploded = 1
	ReasonBombDefused  = 7
	ReasonCTKilled     = 8
	ReasonTKilled      = 9
	ReasonTimeExpired  = 12
)

// RoundBoundary marks the termination of one round.
type RoundBoundary struct {
	RoundNumber int  `json:"roundNumber"`
	Winner      Team `json:"winner"`
	Reason      int  `json:"reason"`
	EndTick     int  `json:"tick"`
}

// Vec3 is a 3D world-space position or velocity in Hammer units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// VecFromR3 converts a geo vector into a Vec3.
func VecFromR3(v r3.Vector) Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// R3 returns v as a geo vector.
func (v Vec3) R3() r3.Vector { return r3.Vector{X: v.X, Y: v.Y, Z: v.Z} }

// Distance returns the Euclidean distance between v and o.
func (v Vec3) Distance(o Vec3) float64 {
	return v.R3().Sub(o.R3()).Norm()
}

// HorizontalSpeed returns the magnitude of the X/Y components of a velocity.
func (v Vec3) HorizontalSpeed() float64 {
	return r3.Vector{X: v.X, Y: v.Y}.Norm()
}

// ViewAngles holds a player's view direction in degrees.
type ViewAngles struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
}

// StateSample is one entity's state at one tick. Fields that were not requested
// from the snapshot source, or that failed coercion, hold their zero value
// (Alive and Health default to true and 100 when the column is absent).
type StateSample struct {
	Tick     int
	EntityID string
	Name     string
	Team     int

	Position Vec3
	Velocity Vec3
	View     ViewAngles

	Health         int
	Armor          int
	Alive          bool
	Scoped         bool
	Walking        bool
	Crouching      bool
	Airborne       bool
	HasHelmet      bool
	HasDefuser     bool
	Balance        int
	EquipmentValue int
	CashSpent      int
	ActiveWeapon   string
}
