package tagger

import "regexp"

// Category is one entry of the detection registry: a name, plain substring
// keywords, and regex patterns catching hyphenation and word-boundary
// variants. A category is detected when either test matches.
//
// The registry is the single source of truth for detection; the tagger and
// any future import tooling both read it.
type Category struct {
	Name     string
	Keywords []string
	Patterns []*regexp.Regexp
}

var registry = []Category{
	{
		Name:     "amateur",
		Keywords: []string{"amateur", "homemade", "home made"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\bhome[\s-]?made\b`)},
	},
	{
		Name:     "professional",
		Keywords: []string{"professional", "studio", "4k production"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\bpro(?:fessionally)?[\s-]shot\b`)},
	},
	{
		Name:     "milf",
		Keywords: []string{"milf", "cougar"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\bm\.?i\.?l\.?f\b`)},
	},
	{
		Name:     "stepmom",
		Keywords: []string{"stepmom", "step mom", "stepmother"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\bstep[\s-]?mom(?:my|mother)?\b`)},
	},
	{
		Name:     "stepsis",
		Keywords: []string{"stepsis", "step sis", "stepsister"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\bstep[\s-]?sis(?:ter)?\b`)},
	},
	{
		Name:     "mature",
		Keywords: []string{"mature", "older woman"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\b40\+|\b50\+`)},
	},
	{
		Name:     "teen",
		Keywords: []string{"teen", "18 year old", "barely legal"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\b18[\s-]?(?:yo|y\.o\.|year[\s-]old)\b`)},
	},
	{
		Name:     "college",
		Keywords: []string{"college", "coed", "dorm"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\bco[\s-]?ed\b`)},
	},
	{
		Name:     "bbw",
		Keywords: []string{"bbw", "curvy", "plus size"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\bplus[\s-]?size\b`)},
	},
	{
		Name:     "latina",
		Keywords: []string{"latina", "latin"},
		Patterns: nil,
	},
	{
		Name:     "asian",
		Keywords: []string{"asian", "japanese", "korean"},
		Patterns: nil,
	},
	{
		Name:     "ebony",
		Keywords: []string{"ebony", "black beauty"},
		Patterns: nil,
	},
	{
		Name:     "blonde",
		Keywords: []string{"blonde", "blond"},
		Patterns: nil,
	},
	{
		Name:     "redhead",
		Keywords: []string{"redhead", "ginger"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\bred[\s-]?head(?:ed)?\b`)},
	},
	{
		Name:     "anal",
		Keywords: []string{"anal"},
		Patterns: nil,
	},
	{
		Name:     "threesome",
		Keywords: []string{"threesome", "3some", "menage"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\bthree[\s-]?some\b|\b3[\s-]?some\b`)},
	},
	{
		Name:     "lesbian",
		Keywords: []string{"lesbian", "girl on girl"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\bgirl[\s-]on[\s-]girl\b`)},
	},
	{
		Name:     "pov",
		Keywords: []string{"pov", "point of view"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\bp\.?o\.?v\b`)},
	},
	{
		Name:     "outdoor",
		Keywords: []string{"outdoor", "outdoors", "public", "beach"},
		Patterns: nil,
	},
	{
		Name:     "cosplay",
		Keywords: []string{"cosplay", "costume", "roleplay"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\brole[\s-]?play\b`)},
	},
	{
		Name:     "vintage",
		Keywords: []string{"vintage", "retro", "classic"},
		Patterns: nil,
	},
	{
		Name:     "hd",
		Keywords: []string{"hd", "1080p", "4k", "high definition"},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`\bultra[\s-]?hd\b|\b2160p\b`)},
	},
}

// quickieSignals mark short-form content regardless of duration.
var quickieSignals = struct {
	Keywords []string
	Patterns []*regexp.Regexp
}{
	Keywords: []string{"quickie", "teaser", "preview", "sneak peek"},
	Patterns: []*regexp.Regexp{regexp.MustCompile(`\bsneak[\s-]?peek\b|\bshort[\s-]?clip\b`)},
}

// Registry returns the active category registry.
func Registry() []Category {
	return registry
}
