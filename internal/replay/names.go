package replay

// Game event table names.
const (
	EventRoundEnd       = "round_end"
	EventRoundFreezeEnd = "round_freeze_end"
	EventPlayerDeath    = "player_death"
	EventPlayerHurt     = "player_hurt"
	EventWeaponFire     = "weapon_fire"
	EventPlayerBlind    = "player_blind"
	EventItemPurchase   = "item_purchase"

	EventFlashDetonate = "flashbang_detonate"
	EventSmokeDetonate = "smokegrenade_detonate"
	EventHEDetonate    = "hegrenade_detonate"
	EventInfernoStart  = "inferno_startburn"
	EventDecoyStarted  = "decoy_started"

	EventBombPlanted      = "bomb_planted"
	EventBombDefused      = "bomb_defused"
	EventBombExploded     = "bomb_exploded"
	EventBombDropped      = "bomb_dropped"
	EventBombPickup       = "bomb_pickup"
	EventBombBeginPlant   = "bomb_beginplant"
	EventBombAbortPlant   = "bomb_abortplant"
	EventBombBeginDefuse  = "bomb_begindefuse"
	EventBombAbortDefuse  = "bomb_abortdefuse"
)

// Event table columns.
const (
	ColTick            = "tick"
	ColRound           = "round"
	ColWinner          = "winner"
	ColReason          = "reason"
	ColAttackerSteamID = "attacker_steamid"
	ColAttackerName    = "attacker_name"
	ColUserSteamID     = "user_steamid"
	ColUserName        = "user_name"
	ColAssisterSteamID = "assister_steamid"
	ColWeapon          = "weapon"
	ColHeadshot        = "headshot"
	ColPenetrated      = "penetrated"
	ColAttackerBlind   = "attackerblind"
	ColNoScope         = "noscope"
	ColThruSmoke       = "thrusmoke"
	ColAssistedFlash   = "assistedflash"
	ColDmgHealth       = "dmg_health"
	ColDmgArmor        = "dmg_armor"
	ColHealth          = "health"
	ColArmor           = "armor"
	ColHitGroup        = "hitgroup"
	ColEntityID        = "entityid"
	ColX               = "x"
	ColY               = "y"
	ColZ               = "z"
	ColBlindDuration   = "blind_duration"
	ColSite            = "site"
	ColHasKit          = "haskit"
	ColSilenced        = "silenced"
	ColTeam            = "team"
)

// Snapshot property names.
const (
	PropSteamID        = "steamid"
	PropName           = "name"
	PropTeamNum        = "team_num"
	PropX              = "X"
	PropY              = "Y"
	PropZ              = "Z"
	PropVelocityX      = "velocity_X"
	PropVelocityY      = "velocity_Y"
	PropVelocityZ      = "velocity_Z"
	PropYaw            = "yaw"
	PropPitch          = "pitch"
	PropHealth         = "health"
	PropArmorValue     = "armor_value"
	PropHasHelmet      = "has_helmet"
	PropHasDefuser     = "has_defuser"
	PropIsAlive        = "is_alive"
	PropBalance        = "balance"
	PropEquipmentValue = "equipment_value"
	PropCashSpent      = "cash_spent_this_round"
	PropActiveWeapon   = "active_weapon"
	PropIsScoped       = "is_scoped"
	PropIsWalking      = "is_walking"
	PropInCrouch       = "in_crouch"
	PropIsAirborne     = "is_airborne"
)
