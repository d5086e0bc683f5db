package assets

// Lore holds the codex entry for every item and enemy, keyed by codex id.
// An entry is shown once its codex id has been discovered.
var Lore = map[string]string{
	// Enemies
	"dummy_melee":  "A sandbag wired to a hit counter. It has never once complained.",
	"dummy_ranged": "A hovering target that logs every near miss for the instructors.",
	"rat_swarm":    "Gutter rats with salvaged optics. They hunt in packs and share one bad idea.",
	"drone":        "Cheap surveillance drones. Somewhere a bored operator is watching you.",
	"sec_bot":      "Corporate security hardware, still enforcing a contract nobody remembers signing.",
	"ganger":       "Street muscle with more chrome than sense.",
	"netrunner":    "A hacker who stayed jacked in too long. The body came back, the mind did not.",
	"cyborg":       "More machine than person now, and angry about the exchange rate.",
	"warden":       "A slow, heavy prison unit. It never hurries because it never has to.",
	"enforcer":     "Corporate enforcement in full riot kit. Negotiation is not in its firmware.",
	"mech":         "A walking weapons platform leased to whoever pays the most.",
	"overseer":     "The Mainframe's eye in the deep sectors. Destroy it and the way down opens.",

	// Weapons
	"wpn_pipe":       "A heavy wrench. Fixes pipes, breaks everything else.",
	"wpn_baton":      "A stun baton with the safety filed off.",
	"wpn_smg":        "Sprays more than it aims.",
	"wpn_pistol1":    "A reliable sidearm with a focused beam.",
	"wpn_knife":      "Monomolecular edge. Handle with care.",
	"wpn_shotgun":    "Close-range crowd control.",
	"wpn_sword":      "A blade vibrating at a frequency that hums through bone.",
	"wpn_chainsword": "Loud, heavy and completely unsubtle.",
	"wpn_rifle1":     "Military-grade pulse rifle. Serial numbers removed.",
	"wpn_hammer":     "A hydraulic sledge built for demolition crews.",
	"wpn_plasma":     "Fires superheated plasma. Do not point at friends.",
	"wpn_railgun":    "Magnetic accelerator. The projectile outruns its own noise.",
	"wpn_sniper":     "Long barrel, smart scope, one very bad day for the target.",

	// Armor
	"arm_jacket":   "Padded jacket with flak inserts.",
	"arm_vest1":    "Stops small-arms fire, mostly.",
	"arm_vest2":    "Layered composite plates over a mesh undersuit.",
	"arm_plating1": "Ceramic plates bonded to the torso.",
	"arm_plating2": "Titanium plating. Heavy, but worth it.",
	"arm_exosuit":  "A powered frame that turns its wearer into a walking tank.",

	// Consumables
	"potion_health":       "A nanite injector that closes wounds on contact.",
	"potion_health_large": "A full trauma kit in one syringe.",
	"scroll_teleport":     "A one-shot displacement script. Destination not guaranteed.",
	"scroll_invisibility": "Optical camo firmware. Enemies lose track of you, and you of them.",
	"buff_attack":         "Combat stims. Hit harder for a while.",
	"buff_defense":        "Dermal hardener. Take less damage for a while.",
	GoldCodexID:           "Untraceable credit chips, accepted everywhere that matters.",
}
