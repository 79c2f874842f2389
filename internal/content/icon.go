package content

// Icon is the closed set of venture icon names. Frontmatter supplies a
// free-form string; ParseIcon maps it into this set with an explicit
// fallback, so rendering never dispatches on unchecked input.
type Icon string

const (
	IconCode    Icon = "code"
	IconRocket  Icon = "rocket"
	IconChart   Icon = "chart"
	IconBolt    Icon = "bolt"
	IconGlobe   Icon = "globe"
	IconWrench  Icon = "wrench"
	IconDefault Icon = "default"
)

var iconGlyphs = map[Icon]string{
	IconCode:    "⌨",     // keyboard
	IconRocket:  "\U0001F680", // rocket
	IconChart:   "\U0001F4C8", // chart increasing
	IconBolt:    "⚡",     // high voltage
	IconGlobe:   "\U0001F310", // globe with meridians
	IconWrench:  "\U0001F527", // wrench
	IconDefault: "■",     // black square
}

// ParseIcon maps a frontmatter icon name into the closed icon set,
// falling back to IconDefault for anything unrecognized.
func ParseIcon(name string) Icon {
	i := Icon(name)
	if _, ok := iconGlyphs[i]; ok && i != IconDefault {
		return i
	}
	return IconDefault
}

// Glyph returns the display glyph for the icon.
func (i Icon) Glyph() string {
	if g, ok := iconGlyphs[i]; ok {
		return g
	}
	return iconGlyphs[IconDefault]
}
