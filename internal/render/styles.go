package render

import "github.com/gdamore/tcell/v2"

var (
	styleBase      = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleSeparator = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleLowHealth = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleGear      = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleHint      = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleNewest    = tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	styleOlder     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleTargeting = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	stylePreview   = tcell.StyleDefault.Background(tcell.ColorDarkRed)
)

// lowHealth is the fraction of max health below which HP is drawn in red.
const lowHealth = 0.25
