package model

// Category names one event kind.
type Category string

const (
	CategoryKill       Category = "kill"
	CategoryDamage     Category = "damage"
	CategoryGrenade    Category = "grenade"
	CategoryBlind      Category = "blind"
	CategoryBomb       Category = "bomb"
	CategoryWeaponFire Category = "weapon_fire"
	CategoryPurchase   Category = "purchase"
	CategoryEconomy    Category = "economy"
	CategoryRounds     Category = "rounds"
	CategoryPlayers    Category = "players"
	CategoryPositions  Category = "positions"
	CategoryMetadata   Category = "metadata"
	CategoryTactics    Category = "tactics"
)

// RawEvent is the typed form of one decoder row, after coercion.
type RawEvent interface {
	EventTick() int
	EventCategory() Category
}

// ---- Raw events, one per category ----

type RawKill struct {
	Tick                        int
	AttackerID, VictimID        string
	AssisterID                  string
	AttackerName, VictimName    string
	Weapon                      string
	Headshot, Penetrated        bool
	AttackerBlind, NoScope      bool
	ThroughSmoke, AssistedFlash bool
}

type RawDamage struct {
	Tick                            int
	AttackerID, VictimID            string
	Damage, DamageArmor             int
	HealthRemaining, ArmorRemaining int
	Weapon                          string
	HitGroup                        int
}

type RawGrenade struct {
	Tick      int
	Type      string
	ThrowerID string
	Position  Vec3
}

type RawBlind struct {
	Tick                 int
	VictimID, AttackerID string
	Duration             float64
	EntityID             int
}

type RawBombAction struct {
	Tick     int
	Type     string
	ActorID  string
	Site     *string
	HasKit   *bool
	Position *Vec3
}

type RawWeaponFire struct {
	Tick     int
	ActorID  string
	Weapon   string
	Silenced bool
}

type RawPurchase struct {
	Tick    int
	ActorID string
	Item    string
	Team    int
}

func (e RawKill) EventTick() int       { return e.Tick }
func (e RawDamage) EventTick() int     { return e.Tick }
func (e RawGrenade) EventTick() int    { return e.Tick }
func (e RawBlind) EventTick() int      { return e.Tick }
func (e RawBombAction) EventTick() int { return e.Tick }
func (e RawWeaponFire) EventTick() int { return e.Tick }
func (e RawPurchase) EventTick() int   { return e.Tick }

func (RawKill) EventCategory() Category       { return CategoryKill }
func (RawDamage) EventCategory() Category     { return CategoryDamage }
func (RawGrenade) EventCategory() Category    { return CategoryGrenade }
func (RawBlind) EventCategory() Category      { return CategoryBlind }
func (RawBombAction) EventCategory() Category { return CategoryBomb }
func (RawWeaponFire) EventCategory() Category { return CategoryWeaponFire }
func (RawPurchase) EventCategory() Category   { return CategoryPurchase }

// ---- Enriched events ----

type Kill struct {
	Tick             int     `json:"tick"`
	Round            int     `json:"round"`
	AttackerID       string  `json:"attackerSteamId"`
	AttackerName     string  `json:"attackerName"`
	VictimID         string  `json:"victimSteamId"`
	VictimName       string  `json:"victimName"`
	AssisterID       string  `json:"assisterSteamId,omitempty"`
	Weapon           string  `json:"weapon"`
	WeaponCategory   string  `json:"weaponCategory"`
	Headshot         bool    `json:"headshot"`
	Penetrated       bool    `json:"penetrated"`
	AttackerBlind    bool    `json:"attackerBlind"`
	NoScope          bool    `json:"noScope"`
	ThroughSmoke     bool    `json:"throughSmoke"`
	AssistedFlash    bool    `json:"assistedFlash"`
	AttackerPosition Vec3    `json:"attackerPosition"`
	VictimPosition   Vec3    `json:"victimPosition"`
	Distance         float64 `json:"distance"`
}

type Damage struct {
	Tick            int    `json:"tick"`
	Round           int    `json:"round"`
	AttackerID      string `json:"attackerSteamId"`
	VictimID        string `json:"victimSteamId"`
	Damage          int    `json:"damage"`
	DamageArmor     int    `json:"damageArmor"`
	HealthRemaining int    `json:"healthRemaining"`
	ArmorRemaining  int    `json:"armorRemaining"`
	Weapon          string `json:"weapon"`
	WeaponCategory  string `json:"weaponCategory"`
	HitGroup        int    `json:"hitgroup"`
}

type Grenade struct {
	Type      string `json:"type"`
	Tick      int    `json:"tick"`
	Round     int    `json:"round"`
	ThrowerID string `json:"throwerSteamId"`
	Position  Vec3   `json:"position"`
}

type PlayerBlind struct {
	Tick       int     `json:"tick"`
	Round      int     `json:"round"`
	VictimID   string  `json:"victimSteamId"`
	AttackerID string  `json:"attackerSteamId"`
	Duration   float64 `json:"duration"`
	EntityID   int     `json:"entityId"`
}

type BombEvent struct {
	Type     string  `json:"type"`
	Tick     int     `json:"tick"`
	Round    int     `json:"round"`
	ActorID  string  `json:"steamId"`
	Site     *string `json:"site,omitempty"`
	HasKit   *bool   `json:"hasKit,omitempty"`
	Position *Vec3   `json:"position,omitempty"`
}

type WeaponFire struct {
	Tick           int        `json:"tick"`
	Round          int        `json:"round"`
	ActorID        string     `json:"steamId"`
	Weapon         string     `json:"weapon"`
	WeaponCategory string     `json:"weaponCategory"`
	Silenced       bool       `json:"silencer"`
	Position       Vec3       `json:"position"`
	Velocity       Vec3       `json:"velocity"`
	Speed          float64    `json:"speed"`
	View           ViewAngles `json:"viewAngles"`
	Scoped         bool       `json:"isScoped"`
	Crouching      bool       `json:"isCrouching"`
	Airborne       bool       `json:"isAirborne"`
	Moving         bool       `json:"isMoving"`
	CounterStrafed bool       `json:"isCounterStrafed"`
}

type Purchase struct {
	Tick         int    `json:"tick"`
	Round        int    `json:"round"`
	ActorID      string `json:"steamId"`
	Item         string `json:"item"`
	ItemCategory string `json:"itemCategory"`
	Team         int    `json:"team"`
}

// EconomyEntry is one player's economic state at a round's freeze-end tick.
type EconomyEntry struct {
	SteamID        string `json:"steamId"`
	Balance        int    `json:"balance"`
	EquipmentValue int    `json:"equipmentValue"`
	SpentThisRound int    `json:"spentThisRound"`
	HasHelmet      bool   `json:"hasHelmet"`
	HasDefuser     bool   `json:"hasDefuser"`
	ArmorValue     int    `json:"armorValue"`
	Team           int    `json:"team"`
	Weapon         string `json:"weapon"`
}

// EconomyRound is the roster snapshot taken when buy time ends.
type EconomyRound struct {
	Round   int            `json:"round"`
	Tick    int            `json:"tick"`
	Players []EconomyEntry `json:"players"`
}

type PositionEntry struct {
	SteamID   string  `json:"steamId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	VelocityX float64 `json:"velocityX"`
	VelocityY float64 `json:"velocityY"`
	VelocityZ float64 `json:"velocityZ"`
	Speed     float64 `json:"speed"`
	Health    int     `json:"health"`
	Armor     int     `json:"armor"`
	Team      int     `json:"team"`
	Scoped    bool    `json:"isScoped"`
	Walking   bool    `json:"isWalking"`
	Crouching bool    `json:"isCrouching"`
	Airborne  bool    `json:"isAirborne"`
	Weapon    string  `json:"weapon"`
	Balance   int     `json:"balance"`
}

type PositionSnapshot struct {
	Tick    int             `json:"tick"`
	Players []PositionEntry `json:"players"`
}

// ---- Derived tactical events ----

// EntryDuel is the first kill of a round.
type EntryDuel struct {
	Round    int     `json:"round"`
	Tick     int     `json:"tick"`
	WinnerID string  `json:"winnerId"`
	LoserID  string  `json:"loserId"`
	Weapon   string  `json:"weapon"`
	Headshot bool    `json:"headshot"`
	Distance float64 `json:"distance"`
}

// Trade links a kill to the later kill of its attacker.
type Trade struct {
	Round            int     `json:"round"`
	OriginalKillTick int     `json:"originalKillTick"`
	TradeTick        int     `json:"tradeTick"`
	TimeToTrade      float64 `json:"timeToTrade"`
	OriginalVictimID string  `json:"originalVictimId"`
	OriginalKillerID string  `json:"originalKillerId"`
	TraderID         string  `json:"traderId"`
}

// Clutch is a heuristic multi-kill run by one attacker within a round.
type Clutch struct {
	Round         int    `json:"round"`
	SteamID       string `json:"steamId"`
	KillsInClutch int    `json:"killsInClutch"`
	StartTick     int    `json:"startTick"`
	Won           bool   `json:"won"`
}

var (
	_ RawEvent = RawKill{}
	_ RawEvent = RawDamage{}
	_ RawEvent = RawGrenade{}
	_ RawEvent = RawBlind{}
	_ RawEvent = RawBombAction{}
	_ RawEvent = RawWeaponFire{}
	_ RawEvent = RawPurchase{}
)
