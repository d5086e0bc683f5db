package render

import (
	"cyber-rogue/assets"
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/state"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDHeight is the number of rows reserved below the map.
const HUDHeight = 7

// Renderer draws the game world onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(gamemap.Pos{}, w, max(0, h-HUDHeight)),
	}
}

// Screen returns the screen the renderer draws on.
func (r *Renderer) Screen() tcell.Screen { return r.screen }

// Resize picks up a new terminal size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.Resize(w, max(0, h-HUDHeight))
}

// ScreenToWorld converts a screen cell, such as a mouse position, to a world
// position under the current camera.
func (r *Renderer) ScreenToWorld(sx, sy int) gamemap.Pos {
	return r.camera.ScreenToWorld(sx, sy)
}

// DrawFrame renders one state: terrain, the things on it, the aim preview
// and the HUD. preview is the targeting line, if any.
func (r *Renderer) DrawFrame(s *state.GameState, preview []gamemap.Pos) {
	r.screen.Clear()
	if s == nil || s.Grid == nil {
		r.screen.Show()
		return
	}
	r.camera.Center(s.Player.Pos)
	r.drawMap(s)
	r.drawFeatures(s)
	r.drawItems(s)
	r.drawEnemies(s)
	r.drawPreview(s, preview)
	for _, p := range s.Projectile {
		r.put(p, assets.GlyphProjectile, styleBase)
	}
	r.put(s.Player.Pos, assets.GlyphPlayer, styleBase)
	r.DrawHUD(s)
	r.screen.Show()
}

// drawMap renders every visible or remembered tile using the sector's glyphs.
func (r *Renderer) drawMap(s *state.GameState) {
	theme := assets.Theme(s.Level)
	for i := 0; i < s.Grid.Cells(); i++ {
		p := s.Grid.PosOf(i)
		visible := s.Visible.Has(i)
		if !visible && !s.Visited[i] {
			continue
		}
		var glyph string
		switch tile := s.Grid.At(p.X, p.Y); {
		case tile == gamemap.TileLockedDoor:
			glyph = assets.GlyphDoor
		case tile == gamemap.TileWall && visible:
			glyph = theme.Wall
		case tile == gamemap.TileWall:
			glyph = theme.DimWall
		case visible:
			glyph = theme.Floor
		default:
			glyph = theme.DimFloor
		}
		r.put(p, glyph, styleBase)
	}
}

// drawFeatures draws remembered stairs and revealed traps and doors.
func (r *Renderer) drawFeatures(s *state.GameState) {
	for _, t := range s.Traps {
		if t.Revealed && s.IsVisited(t.Pos) {
			r.put(t.Pos, assets.GlyphTrap, styleBase)
		}
	}
	for _, d := range s.SecretDoors {
		if d.Revealed && s.IsVisited(d.Pos) {
			r.put(d.Pos, assets.GlyphDoor, styleBase)
		}
	}
	if s.Stairs != nil && s.StairsDiscovered && s.IsVisited(*s.Stairs) {
		r.put(*s.Stairs, assets.GlyphStairsDown, styleBase)
	}
}

func (r *Renderer) drawItems(s *state.GameState) {
	for _, it := range s.Items {
		if s.IsVisible(it.Pos) {
			r.put(it.Pos, assets.ItemGlyph(it), styleBase)
		}
	}
}

func (r *Renderer) drawEnemies(s *state.GameState) {
	for _, e := range s.Enemies {
		if s.IsVisible(e.Pos) {
			r.put(e.Pos, e.Glyph, styleBase)
		}
	}
}

// drawPreview shades the aim line and marks its end with the target glyph.
func (r *Renderer) drawPreview(s *state.GameState, preview []gamemap.Pos) {
	for i, p := range preview {
		if p == s.Player.Pos {
			continue
		}
		if i == len(preview)-1 {
			r.put(p, assets.GlyphTarget, stylePreview)
			continue
		}
		sx, sy, ok := r.camera.WorldToScreen(p)
		if !ok {
			continue
		}
		mainc, combc, _, _ := r.screen.GetContent(sx, sy)
		r.screen.SetContent(sx, sy, mainc, combc, stylePreview)
		r.screen.SetContent(sx+1, sy, ' ', nil, stylePreview)
	}
}

// put draws glyph at world position p when it is on screen.
func (r *Renderer) put(p gamemap.Pos, glyph string, style tcell.Style) {
	sx, sy, ok := r.camera.WorldToScreen(p)
	if !ok {
		return
	}
	r.putGlyph(sx, sy, glyph, style)
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
	if runewidth.StringWidth(glyph) < 2 {
		// Fill the second column so every tile spans two cells.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
