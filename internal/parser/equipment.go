package parser

import (
	"strings"

	common "github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/common"
	"github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/events"
)

// classNames maps equipment types to the game's entity class names.
var classNames = map[common.EquipmentType]string{
	common.EqP2000:        "weapon_hkp2000",
	common.EqGlock:        "weapon_glock",
	common.EqP250:         "weapon_p250",
	common.EqDeagle:       "weapon_deagle",
	common.EqFiveSeven:    "weapon_fiveseven",
	common.EqDualBerettas: "weapon_elite",
	common.EqTec9:         "weapon_tec9",
	common.EqCZ:           "weapon_cz75a",
	common.EqUSP:          "weapon_usp_silencer",
	common.EqRevolver:     "weapon_revolver",

	common.EqMP7:   "weapon_mp7",
	common.EqMP9:   "weapon_mp9",
	common.EqBizon: "weapon_bizon",
	common.EqMac10: "weapon_mac10",
	common.EqUMP:   "weapon_ump45",
	common.EqP90:   "weapon_p90",
	common.EqMP5:   "weapon_mp5sd",

	common.EqSawedOff: "weapon_sawedoff",
	common.EqNova:     "weapon_nova",
	common.EqSwag7:    "weapon_mag7",
	common.EqXM1014:   "weapon_xm1014",
	common.EqM249:     "weapon_m249",
	common.EqNegev:    "weapon_negev",

	common.EqGalil:  "weapon_galilar",
	common.EqFamas:  "weapon_famas",
	common.EqAK47:   "weapon_ak47",
	common.EqM4A4:   "weapon_m4a1",
	common.EqM4A1:   "weapon_m4a1_silencer",
	common.EqScout:  "weapon_ssg08",
	common.EqSG553:  "weapon_sg556",
	common.EqAUG:    "weapon_aug",
	common.EqAWP:    "weapon_awp",
	common.EqScar20: "weapon_scar20",
	common.EqG3SG1:  "weapon_g3sg1",

	common.EqZeus:  "weapon_taser",
	common.EqKnife: "weapon_knife",
	common.EqBomb:  "weapon_c4",
	common.EqWorld: "world",

	common.EqDecoy:      "weapon_decoy",
	common.EqMolotov:    "weapon_molotov",
	common.EqIncendiary: "weapon_incgrenade",
	common.EqFlash:      "weapon_flashbang",
	common.EqSmoke:      "weapon_smokegrenade",
	common.EqHE:         "weapon_hegrenade",
}

// className returns the entity class name of a weapon, or "" for none.
func className(w *common.Equipment) string {
	if w == nil {
		return ""
	}
	return equipmentClass(w.Type)
}

func equipmentClass(t common.EquipmentType) string {
	if name, ok := classNames[t]; ok {
		return name
	}
	if t == common.EqUnknown {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(t.String(), " ", "_"))
}

func silenced(w *common.Equipment) bool {
	return w != nil && (w.Type == common.EqM4A1 || w.Type == common.EqUSP)
}

func hitGroupLabel(hg events.HitGroup) string {
	switch hg {
	case events.HitGroupHead:
		return "head"
	case events.HitGroupChest:
		return "chest"
	case events.HitGroupStomach:
		return "stomach"
	case events.HitGroupLeftArm:
		return "leftarm"
	case events.HitGroupRightArm:
		return "rightarm"
	case events.HitGroupLeftLeg:
		return "leftleg"
	case events.HitGroupRightLeg:
		return "rightleg"
	case events.HitGroupNeck:
		return "neck"
	case events.HitGroupGear:
		return "gear"
	default:
		return "generic"
	}
}

// teamLabel renders a winning side the way round_end tables carry it.
func teamLabel(t common.Team) string {
	switch t {
	case common.TeamTerrorists:
		return "T"
	case common.TeamCounterTerrorists:
		return "CT"
	default:
		return ""
	}
}
