package editing

// Option is one selectable entry of a modal control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func opts(pairs ...string) []Option {
	out := make([]Option, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Option{Value: pairs[i], Label: pairs[i+1]})
	}
	return out
}

// Palette lists every option the edit modal offers.  The struct validation
// tags on TypographyStyle and ButtonStyle accept exactly these values.
type Palette struct {
	FontFamilies   []Option            `json:"font_families"`
	FontSizes      []Option            `json:"font_sizes"`
	FontWeights    []Option            `json:"font_weights"`
	TextAligns     []Option            `json:"text_aligns"`
	LineHeights    []Option            `json:"line_heights"`
	LetterSpacings []Option            `json:"letter_spacings"`
	MobileSizes    []Option            `json:"mobile_sizes"`
	TabletSizes    []Option            `json:"tablet_sizes"`
	DesktopSizes   []Option            `json:"desktop_sizes"`
	TextColors     []Option            `json:"text_colors"`
	Backgrounds    []Option            `json:"backgrounds"`
	Margins        map[string][]Option `json:"margins"`
	Paddings       map[string][]Option `json:"paddings"`
}

// ButtonPalette lists the options of the button modal.
type ButtonPalette struct {
	LinkTypes    []Option `json:"link_types"`
	Targets      []Option `json:"targets"`
	Variants     []Option `json:"variants"`
	Backgrounds  []Option `json:"backgrounds"`
	TextColors   []Option `json:"text_colors"`
	BorderColors []Option `json:"border_colors"`
	FontFamilies []Option `json:"font_families"`
	FontSizes    []Option `json:"font_sizes"`
	FontWeights  []Option `json:"font_weights"`
	Radii        []Option `json:"radii"`
	BorderStyles []Option `json:"border_styles"`
	BorderWidths []Option `json:"border_widths"`
	Paddings     []Option `json:"paddings"`
	Alignments   []Option `json:"alignments"`
}

func spacing(prefix string) []Option {
	steps := []string{"0", "1", "2", "4", "6", "8"}
	out := make([]Option, 0, len(steps))
	for _, s := range steps {
		out = append(out, Option{Value: prefix + "-" + s, Label: s})
	}
	return out
}

// TextPalette is the option set for text and textarea elements.
var TextPalette = Palette{
	FontFamilies: opts("font-sans", "Sans Serif", "font-serif", "Serif", "font-mono", "Monospace"),
	FontSizes: opts("text-xs", "Extra Small", "text-sm", "Small", "text-base", "Base", "text-lg", "Large",
		"text-xl", "Extra Large", "text-2xl", "2XL", "text-3xl", "3XL", "text-4xl", "4XL"),
	FontWeights: opts("font-thin", "Thin", "font-light", "Light", "font-normal", "Normal", "font-medium", "Medium",
		"font-semibold", "Semibold", "font-bold", "Bold", "font-extrabold", "Extra Bold"),
	TextAligns:     opts("text-left", "Left", "text-center", "Center", "text-right", "Right", "text-justify", "Justify"),
	LineHeights:    opts("leading-tight", "Tight", "leading-normal", "Normal", "leading-relaxed", "Relaxed", "leading-loose", "Loose"),
	LetterSpacings: opts("tracking-tight", "Tight", "tracking-normal", "Normal", "tracking-wide", "Wide", "tracking-wider", "Wider"),
	MobileSizes:    opts("text-xs", "XS", "text-sm", "SM", "text-base", "Base", "text-lg", "LG"),
	TabletSizes:    opts("md:text-sm", "SM", "md:text-base", "Base", "md:text-lg", "LG", "md:text-xl", "XL"),
	DesktopSizes:   opts("lg:text-base", "Base", "lg:text-lg", "LG", "lg:text-xl", "XL", "lg:text-2xl", "2XL"),
	TextColors: opts("text-foreground", "Default", "text-primary", "Primary", "text-secondary", "Secondary",
		"text-muted-foreground", "Muted", "text-red-500", "Red", "text-blue-500", "Blue", "text-green-500", "Green",
		"text-yellow-500", "Yellow", "text-purple-500", "Purple", "text-white", "White", "text-black", "Black"),
	Backgrounds: opts("none", "None", "bg-primary", "Primary", "bg-secondary", "Secondary", "bg-muted", "Muted",
		"bg-red-100", "Light Red", "bg-blue-100", "Light Blue", "bg-green-100", "Light Green",
		"bg-yellow-100", "Light Yellow", "bg-purple-100", "Light Purple"),
	Margins: map[string][]Option{
		"top": spacing("mt"), "bottom": spacing("mb"), "left": spacing("ml"), "right": spacing("mr"),
	},
	Paddings: map[string][]Option{
		"top": spacing("pt"), "bottom": spacing("pb"), "left": spacing("pl"), "right": spacing("pr"),
	},
}

// ButtonOptions is the option set for button elements.
var ButtonOptions = ButtonPalette{
	LinkTypes: opts("internal", "Internal Page", "external", "External URL", "mailto", "Email", "tel", "Phone", "anchor", "Page Anchor"),
	Targets:   opts("_self", "Same Tab", "_blank", "New Tab"),
	Variants:  opts("fill", "Fill", "outline", "Outline", "gradient", "Gradient"),
	Backgrounds: opts("bg-primary", "Primary", "bg-secondary", "Secondary", "bg-red-500", "Red", "bg-blue-500", "Blue",
		"bg-green-500", "Green", "bg-yellow-500", "Yellow", "bg-purple-500", "Purple", "bg-orange-500", "Orange"),
	TextColors: opts("text-primary-foreground", "Default", "text-white", "White", "text-black", "Black",
		"text-red-500", "Red", "text-blue-500", "Blue", "text-green-500", "Green"),
	BorderColors: opts("bg-primary", "Primary", "bg-secondary", "Secondary", "bg-red-500", "Red", "bg-blue-500", "Blue", "bg-green-500", "Green"),
	FontFamilies: opts("font-sans", "Sans Serif", "font-serif", "Serif", "font-mono", "Monospace"),
	FontSizes:    opts("text-xs", "Extra Small", "text-sm", "Small", "text-base", "Base", "text-lg", "Large", "text-xl", "Extra Large"),
	FontWeights:  opts("font-light", "Light", "font-normal", "Normal", "font-medium", "Medium", "font-semibold", "Semibold", "font-bold", "Bold"),
	Radii: opts("rounded-none", "None", "rounded-sm", "Small", "rounded-md", "Medium", "rounded-lg", "Large",
		"rounded-xl", "Extra Large", "rounded-full", "Full"),
	BorderStyles: opts("solid", "Solid", "dashed", "Dashed", "dotted", "Dotted"),
	BorderWidths: opts("border-0", "None", "border", "Thin", "border-2", "Medium", "border-4", "Thick"),
	Paddings:     opts("px-2 py-1", "Small", "px-4 py-2", "Medium", "px-6 py-3", "Large", "px-8 py-4", "Extra Large"),
	Alignments:   opts("left", "Left", "center", "Center", "right", "Right", "full", "Full Width"),
}

// Gallery is the fixed set of images offered by the image modal.
var Gallery = []string{
	"/indonesian-contemporary-singer-with-orchestra-back.png",
	"/indonesian-female-pop-singer-performing-on-stage.png",
	"/indonesian-indie-folk-singer-with-acoustic-guitar.png",
	"/indonesian-indie-rock-band-with-instruments.png",
	"/indonesian-male-indie-pop-singer-with-guitar.png",
	"/indonesian-rock-band-performing-live-concert.png",
}
