package model

import "strings"

// IconID is a symbolic icon reference resolved by the presentation layer.
type IconID string

// Known icon identifiers.
const (
	IconShoppingBag IconID = "shopping-bag"
	IconCar         IconID = "car"
	IconHome        IconID = "home"
	IconCoffee      IconID = "coffee"
	IconUtensils    IconID = "utensils"
	IconSmartphone  IconID = "smartphone"
	IconZap         IconID = "zap"
	IconBriefcase   IconID = "briefcase"
	IconTrendingUp  IconID = "trending-up"
	IconGift        IconID = "gift"
	IconTag         IconID = "tag"
)

// DefaultIcon is assigned to categories whose icon is missing or unknown.
const DefaultIcon = IconTag

var knownIcons = map[IconID]string{
	IconShoppingBag: "🛍",
	IconCar:         "🚗",
	IconHome:        "🏠",
	IconCoffee:      "☕",
	IconUtensils:    "🍴",
	IconSmartphone:  "📱",
	IconZap:         "⚡",
	IconBriefcase:   "💼",
	IconTrendingUp:  "📈",
	IconGift:        "🎁",
	IconTag:         "🏷",
}

// legacyIconNames maps the component names stored by older clients.
var legacyIconNames = map[string]IconID{
	"shoppingbag": IconShoppingBag,
	"car":         IconCar,
	"home":        IconHome,
	"coffee":      IconCoffee,
	"utensils":    IconUtensils,
	"smartphone":  IconSmartphone,
	"zap":         IconZap,
	"briefcase":   IconBriefcase,
	"trendingup":  IconTrendingUp,
	"gift":        IconGift,
	"tag":         IconTag,
}

// IsKnown reports whether the icon belongs to the closed icon set.
func (i IconID) IsKnown() bool {
	_, ok := knownIcons[i]
	return ok
}

// Glyph returns a terminal-friendly symbol for the icon.
func (i IconID) Glyph() string {
	if g, ok := knownIcons[i]; ok {
		return g
	}
	return knownIcons[DefaultIcon]
}

// ParseIconID resolves s to a known icon, falling back to DefaultIcon.
// Both kebab-case ids ("shopping-bag") and component names
// ("ShoppingBag") are accepted.
func ParseIconID(s string) IconID {
	if id := IconID(s); id.IsKnown() {
		return id
	}
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	if id, ok := legacyIconNames[key]; ok {
		return id
	}
	return DefaultIcon
}

// KnownIcons returns all icon identifiers in a stable order.
func KnownIcons() []IconID {
	return []IconID{
		IconShoppingBag, IconCar, IconHome, IconCoffee, IconUtensils,
		IconSmartphone, IconZap, IconBriefcase, IconTrendingUp, IconGift, IconTag,
	}
}
