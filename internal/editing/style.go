package editing

import "strings"

// ResponsiveSizes holds the per-breakpoint font size tokens.
type ResponsiveSizes struct {
	Mobile  string `json:"mobile,omitempty" validate:"omitempty,oneof=text-xs text-sm text-base text-lg"`
	Tablet  string `json:"tablet,omitempty" validate:"omitempty,oneof=md:text-sm md:text-base md:text-lg md:text-xl"`
	Desktop string `json:"desktop,omitempty" validate:"omitempty,oneof=lg:text-base lg:text-lg lg:text-xl lg:text-2xl"`
}

// TypographyStyle is the style record of text and textarea elements.  All
// fields are optional; an empty field contributes no class token.
type TypographyStyle struct {
	FontFamily      string           `json:"fontFamily,omitempty" validate:"omitempty,oneof=font-sans font-serif font-mono"`
	FontSize        string           `json:"fontSize,omitempty" validate:"omitempty,oneof=text-xs text-sm text-base text-lg text-xl text-2xl text-3xl text-4xl"`
	FontWeight      string           `json:"fontWeight,omitempty" validate:"omitempty,oneof=font-thin font-light font-normal font-medium font-semibold font-bold font-extrabold"`
	LineHeight      string           `json:"lineHeight,omitempty" validate:"omitempty,oneof=leading-tight leading-normal leading-relaxed leading-loose"`
	LetterSpacing   string           `json:"letterSpacing,omitempty" validate:"omitempty,oneof=tracking-tight tracking-normal tracking-wide tracking-wider"`
	TextAlign       string           `json:"textAlign,omitempty" validate:"omitempty,oneof=text-left text-center text-right text-justify"`
	Italic          bool             `json:"italic,omitempty"`
	Underline       bool             `json:"underline,omitempty"`
	Strikethrough   bool             `json:"strikethrough,omitempty"`
	TextColor       string           `json:"textColor,omitempty" validate:"omitempty,oneof=text-foreground text-primary text-secondary text-muted-foreground text-red-500 text-blue-500 text-green-500 text-yellow-500 text-purple-500 text-white text-black"`
	BackgroundColor string           `json:"backgroundColor,omitempty" validate:"omitempty,oneof=none bg-primary bg-secondary bg-muted bg-red-100 bg-blue-100 bg-green-100 bg-yellow-100 bg-purple-100"`
	MarginTop       string           `json:"marginTop,omitempty" validate:"omitempty,oneof=mt-0 mt-1 mt-2 mt-4 mt-6 mt-8"`
	MarginBottom    string           `json:"marginBottom,omitempty" validate:"omitempty,oneof=mb-0 mb-1 mb-2 mb-4 mb-6 mb-8"`
	MarginLeft      string           `json:"marginLeft,omitempty" validate:"omitempty,oneof=ml-0 ml-1 ml-2 ml-4 ml-6 ml-8"`
	MarginRight     string           `json:"marginRight,omitempty" validate:"omitempty,oneof=mr-0 mr-1 mr-2 mr-4 mr-6 mr-8"`
	PaddingTop      string           `json:"paddingTop,omitempty" validate:"omitempty,oneof=pt-0 pt-1 pt-2 pt-4 pt-6 pt-8"`
	PaddingBottom   string           `json:"paddingBottom,omitempty" validate:"omitempty,oneof=pb-0 pb-1 pb-2 pb-4 pb-6 pb-8"`
	PaddingLeft     string           `json:"paddingLeft,omitempty" validate:"omitempty,oneof=pl-0 pl-1 pl-2 pl-4 pl-6 pl-8"`
	PaddingRight    string           `json:"paddingRight,omitempty" validate:"omitempty,oneof=pr-0 pr-1 pr-2 pr-4 pr-6 pr-8"`
	DropCap         bool             `json:"dropCap,omitempty"`
	CustomClass     string           `json:"customClass,omitempty"`
	ResponsiveSizes *ResponsiveSizes `json:"responsiveSizes,omitempty"`
}

// Clone returns a deep copy.
func (t TypographyStyle) Clone() TypographyStyle {
	if t.ResponsiveSizes != nil {
		rs := *t.ResponsiveSizes
		t.ResponsiveSizes = &rs
	}
	return t
}

// ButtonStyle is the style record of button elements.
type ButtonStyle struct {
	Href     string `json:"href,omitempty"`
	LinkType string `json:"linkType,omitempty" validate:"omitempty,oneof=internal external mailto tel anchor"`
	Target   string `json:"target,omitempty" validate:"omitempty,oneof=_self _blank"`

	Variant         string `json:"variant,omitempty" validate:"omitempty,oneof=fill outline gradient"`
	BackgroundColor string `json:"backgroundColor,omitempty" validate:"omitempty,oneof=bg-primary bg-secondary bg-red-500 bg-blue-500 bg-green-500 bg-yellow-500 bg-purple-500 bg-orange-500"`
	TextColor       string `json:"textColor,omitempty" validate:"omitempty,oneof=text-primary-foreground text-white text-black text-red-500 text-blue-500 text-green-500"`
	BorderColor     string `json:"borderColor,omitempty" validate:"omitempty,oneof=bg-primary bg-secondary bg-red-500 bg-blue-500 bg-green-500"`

	FontFamily string `json:"fontFamily,omitempty" validate:"omitempty,oneof=font-sans font-serif font-mono"`
	FontSize   string `json:"fontSize,omitempty" validate:"omitempty,oneof=text-xs text-sm text-base text-lg text-xl"`
	FontWeight string `json:"fontWeight,omitempty" validate:"omitempty,oneof=font-light font-normal font-medium font-semibold font-bold"`

	BorderRadius string `json:"borderRadius,omitempty" validate:"omitempty,oneof=rounded-none rounded-sm rounded-md rounded-lg rounded-xl rounded-full"`
	BorderStyle  string `json:"borderStyle,omitempty" validate:"omitempty,oneof=solid dashed dotted"`
	BorderWidth  string `json:"borderWidth,omitempty" validate:"omitempty,oneof=border-0 border border-2 border-4"`

	Padding   string `json:"padding,omitempty" validate:"omitempty,oneof='px-2 py-1' 'px-4 py-2' 'px-6 py-3' 'px-8 py-4'"`
	Alignment string `json:"alignment,omitempty" validate:"omitempty,oneof=left center right full"`

	CustomClass string `json:"customClass,omitempty"`
}

// LinkTarget is the anchor target for a linked button; _self when unset.
func (b ButtonStyle) LinkTarget() string {
	if b.Target == "" {
		return "_self"
	}
	return b.Target
}

// fixed token lists
const (
	buttonBase         = "inline-flex items-center justify-center rounded-md text-sm font-medium transition-colors focus-visible:outline-none focus-visible:ring-2 focus-visible:ring-ring focus-visible:ring-offset-2 disabled:opacity-50 disabled:pointer-events-none ring-offset-background"
	buttonOutline      = "border border-input hover:bg-accent hover:text-accent-foreground"
	buttonGradient     = "bg-gradient-to-r from-primary to-primary/80 text-primary-foreground hover:from-primary/90 hover:to-primary/70"
	buttonDefaultFill  = "bg-primary text-primary-foreground hover:bg-primary/90"
	buttonContrastText = "text-white"
	dropCapTokens      = "first-letter:text-6xl first-letter:font-bold first-letter:float-left first-letter:mr-2 first-letter:mt-1"
)

// typographyRule maps one field of a TypographyStyle to its token.  An
// empty result contributes nothing.
type typographyRule func(t TypographyStyle) string

func flag(on bool, token string) string {
	if on {
		return token
	}
	return ""
}

// typographyRules is the field order of TypographyClasses.
var typographyRules = []typographyRule{
	func(t TypographyStyle) string { return t.FontFamily },
	func(t TypographyStyle) string { return t.FontSize },
	func(t TypographyStyle) string { return t.FontWeight },
	func(t TypographyStyle) string { return t.LineHeight },
	func(t TypographyStyle) string { return t.LetterSpacing },
	func(t TypographyStyle) string { return t.TextAlign },
	func(t TypographyStyle) string {
		if t.TextColor == "text-foreground" {
			return ""
		}
		return t.TextColor
	},
	func(t TypographyStyle) string {
		if t.BackgroundColor == "none" {
			return ""
		}
		return t.BackgroundColor
	},
	func(t TypographyStyle) string { return t.MarginTop },
	func(t TypographyStyle) string { return t.MarginBottom },
	func(t TypographyStyle) string { return t.MarginLeft },
	func(t TypographyStyle) string { return t.MarginRight },
	func(t TypographyStyle) string { return t.PaddingTop },
	func(t TypographyStyle) string { return t.PaddingBottom },
	func(t TypographyStyle) string { return t.PaddingLeft },
	func(t TypographyStyle) string { return t.PaddingRight },
	func(t TypographyStyle) string { return flag(t.Italic, "italic") },
	func(t TypographyStyle) string { return flag(t.Underline, "underline") },
	func(t TypographyStyle) string { return flag(t.Strikethrough, "line-through") },
	func(t TypographyStyle) string { return flag(t.DropCap, dropCapTokens) },
	func(t TypographyStyle) string {
		if t.ResponsiveSizes == nil {
			return ""
		}
		return t.ResponsiveSizes.Mobile
	},
	func(t TypographyStyle) string {
		if t.ResponsiveSizes == nil {
			return ""
		}
		return t.ResponsiveSizes.Tablet
	},
	func(t TypographyStyle) string {
		if t.ResponsiveSizes == nil {
			return ""
		}
		return t.ResponsiveSizes.Desktop
	},
	func(t TypographyStyle) string { return t.CustomClass },
}

// TypographyClasses derives the class tokens for a typography record.
func TypographyClasses(t TypographyStyle) []string {
	out := make([]string, 0, 8)
	for _, rule := range typographyRules {
		out = appendTokens(out, rule(t))
	}
	return out
}

type buttonRule func(b ButtonStyle) string

// buttonRules is the field order of ButtonClasses.
var buttonRules = []buttonRule{
	func(ButtonStyle) string { return buttonBase },
	func(b ButtonStyle) string {
		switch b.Variant {
		case "outline":
			return buttonOutline
		case "gradient":
			return buttonGradient
		}
		if b.BackgroundColor == "" {
			return buttonDefaultFill
		}
		if b.TextColor == "" {
			return b.BackgroundColor + " " + buttonContrastText
		}
		return b.BackgroundColor
	},
	func(b ButtonStyle) string { return b.TextColor },
	func(b ButtonStyle) string {
		if b.Variant != "outline" || b.BorderColor == "" {
			return ""
		}
		return strings.Replace(b.BorderColor, "bg-", "border-", 1)
	},
	func(b ButtonStyle) string { return b.FontFamily },
	func(b ButtonStyle) string { return b.FontSize },
	func(b ButtonStyle) string { return b.FontWeight },
	func(b ButtonStyle) string { return b.BorderRadius },
	func(b ButtonStyle) string {
		if b.Variant != "outline" {
			return ""
		}
		return b.BorderWidth
	},
	func(b ButtonStyle) string { return b.Padding },
	func(b ButtonStyle) string {
		switch b.Alignment {
		case "full":
			return "w-full"
		case "center":
			return "mx-auto"
		case "right":
			return "ml-auto"
		}
		return ""
	},
	func(b ButtonStyle) string { return b.CustomClass },
}

// ButtonClasses derives the class tokens for a button record.  The base
// button tokens are always present.
func ButtonClasses(b ButtonStyle) []string {
	out := make([]string, 0, 24)
	for _, rule := range buttonRules {
		out = appendTokens(out, rule(b))
	}
	return out
}

// ClassString joins token lists into one class attribute value.
func ClassString(lists ...[]string) string {
	var all []string
	for _, l := range lists {
		for _, t := range l {
			all = appendTokens(all, t)
		}
	}
	return strings.Join(all, " ")
}

// appendTokens splits s on whitespace and appends each token.
func appendTokens(dst []string, s string) []string {
	return append(dst, strings.Fields(s)...)
}
