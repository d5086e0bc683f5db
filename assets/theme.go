package assets

import "cyber-rogue/internal/state"

// SectorTiles holds the glyphs used to draw one sector's terrain.
// Emoji are drawn by the terminal with their own colors, so lit and
// remembered cells use distinct glyphs instead of a tinted foreground.
type SectorTiles struct {
	Wall     string
	Floor    string
	DimWall  string
	DimFloor string
}

// SectorThemes cycle with the dungeon level; index 0 is the training sector.
var SectorThemes = []SectorTiles{
	{Wall: "🟪", Floor: GlyphFloor, DimWall: GlyphDimWall, DimFloor: GlyphDimFloor},
	{Wall: GlyphWall, Floor: GlyphFloor, DimWall: GlyphDimWall, DimFloor: GlyphDimFloor},
	{Wall: "🟦", Floor: GlyphFloor, DimWall: GlyphDimWall, DimFloor: GlyphDimFloor},
	{Wall: "🟩", Floor: GlyphFloor, DimWall: GlyphDimWall, DimFloor: GlyphDimFloor},
	{Wall: "🟥", Floor: GlyphFloor, DimWall: GlyphDimWall, DimFloor: GlyphDimFloor},
}

// Theme returns the tiles for dungeon level.
func Theme(level int) SectorTiles {
	if level <= 0 {
		return SectorThemes[0]
	}
	return SectorThemes[1+(level-1)%(len(SectorThemes)-1)]
}

// SectorNames label the cycling sector themes, in the order of SectorThemes.
var SectorNames = []string{
	"Training Sector",
	"Undercity Sprawl",
	"Data Havens",
	"Toxic Refineries",
	"Corporate Arcology",
}

// SectorName returns the display name of dungeon level.
func SectorName(level int) string {
	if level <= 0 {
		return SectorNames[0]
	}
	return SectorNames[1+(level-1)%(len(SectorNames)-1)]
}

// ItemGlyph returns the glyph drawn for it on the map and in menus.
func ItemGlyph(it state.Item) string {
	switch it.Kind {
	case state.KindWeapon:
		if it.Weapon == state.Ranged {
			return "🔫"
		}
		return "🔧"
	case state.KindArmor:
		return "🦺"
	case state.KindPotion:
		return "💉"
	case state.KindGold:
		return "💰"
	case state.KindScroll:
		return "📜"
	case state.KindBuff:
		return "💊"
	}
	return "❔"
}

// LoreOpening is shown on the start screen.
const LoreOpening = `The megacity never sleeps, and neither does the Mainframe.
Every five sectors down, an Overseer guards the way deeper.
Jack in, gear up, and see how far the signal reaches.`
