package ui

// NavigationController turns menu actions into viewport scrolls and owns the
// mobile menu flag through the callbacks it was built with.
type NavigationController struct {
	viewport    Viewport
	menuOpen    func() bool
	setMenuOpen func(bool)
}

// NewNavigationController builds a controller over v.
func NewNavigationController(v Viewport, menuOpen func() bool, setMenuOpen func(bool)) *NavigationController {
	return &NavigationController{viewport: v, menuOpen: menuOpen, setMenuOpen: setMenuOpen}
}

// Navigate closes the mobile menu and smooth-scrolls to the section named id.
// Unknown sections and anchors missing from the page are ignored.
func (n *NavigationController) Navigate(id string) bool {
	n.setMenuOpen(false)
	s, ok := ParseSection(id)
	if !ok || !n.viewport.HasAnchor(string(s)) {
		return false
	}
	n.viewport.ScrollIntoView(string(s), ScrollSmooth)
	return true
}

// ScrollToTop smooth-scrolls to offset 0. It does not touch the menu.
func (n *NavigationController) ScrollToTop() {
	n.viewport.ScrollTo(0, ScrollSmooth)
}

// ToggleMenu flips the mobile menu.
func (n *NavigationController) ToggleMenu() {
	n.setMenuOpen(!n.menuOpen())
}
