package content

// Theme names.
const (
	ThemeClassic = "classic"
	ThemeNoir    = "noir"
)

// Theme carries the presentational differences between site variants.
type Theme struct {
	Name string

	Selection string

	NavBase     string
	NavScrolled string
	NavTop      string
	NavLinks    string

	WordmarkSize string
	MenuIconSize int

	LightboxImage string
	CloseIconSize int
	// LightboxHint is shown under the enlarged image; empty hides it.
	LightboxHint string
}

var themes = map[string]Theme{
	ThemeClassic: {
		Name:          ThemeClassic,
		Selection:     "selection:bg-white selection:text-black",
		NavBase:       "fixed top-0 w-full z-50 transition-all duration-300",
		NavScrolled:   "bg-black/80 backdrop-blur-md py-4 border-b border-white/10",
		NavTop:        "bg-transparent py-6",
		NavLinks:      "hidden md:flex space-x-8 text-sm tracking-widest uppercase text-gray-300",
		WordmarkSize:  "text-2xl",
		MenuIconSize:  24,
		LightboxImage: "max-h-[85vh] max-w-full object-contain shadow-2xl",
		CloseIconSize: 40,
		LightboxHint:  "Tap anywhere to close",
	},
	ThemeNoir: {
		Name:          ThemeNoir,
		Selection:     "selection:bg-purple-500 selection:text-white",
		NavBase:       "fixed top-0 w-full z-50 transition-all duration-500",
		NavScrolled:   "bg-black/90 backdrop-blur-lg border-b border-white/10 py-4",
		NavTop:        "bg-transparent py-8",
		NavLinks:      "hidden md:flex space-x-12 text-xs tracking-[0.2em] uppercase text-gray-400 font-medium",
		WordmarkSize:  "text-3xl",
		MenuIconSize:  28,
		LightboxImage: "max-h-[90vh] max-w-[95vw] object-contain shadow-2xl",
		CloseIconSize: 48,
	},
}

// LookupTheme finds a theme by name.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeOf returns the theme of c, falling back to classic.
func (c *Content) ThemeOf() Theme {
	if t, ok := themes[c.Theme]; ok {
		return t
	}
	return themes[ThemeClassic]
}

// NavClass returns the navbar classes for the given scroll state.
func (t Theme) NavClass(scrolled bool) string {
	if scrolled {
		return t.NavBase + " " + t.NavScrolled
	}
	return t.NavBase + " " + t.NavTop
}
