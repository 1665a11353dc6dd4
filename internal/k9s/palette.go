package k9s

// Palette is the set of named colors a skin is derived from.
type Palette struct {
	Background  string `yaml:"background" toml:"background"`
	Comment     string `yaml:"comment" toml:"comment"`
	CurrentLine string `yaml:"current_line" toml:"current_line"`
	Cyan        string `yaml:"cyan" toml:"cyan"`
	Foreground  string `yaml:"foreground" toml:"foreground"`
	Green       string `yaml:"green" toml:"green"`
	Orange      string `yaml:"orange" toml:"orange"`
	Pink        string `yaml:"pink" toml:"pink"`
	Purple      string `yaml:"purple" toml:"purple"`
	Red         string `yaml:"red" toml:"red"`
	Selection   string `yaml:"selection" toml:"selection"`
	Yellow      string `yaml:"yellow" toml:"yellow"`
}

// TokyoNight returns the default palette.
func TokyoNight() Palette {
	return Palette{
		Background:  "default",
		Comment:     "#6272a4",
		CurrentLine: "#44475a",
		Cyan:        "#8be9fd",
		Foreground:  "#f8f8f2",
		Green:       "#50fa7b",
		Orange:      "#ffb86c",
		Pink:        "#ff79c6",
		Purple:      "#bd93f9",
		Red:         "#ff5555",
		Selection:   "#44475a",
		Yellow:      "#f1fa8c",
	}
}

// Overlay returns p with every non-empty color of o applied on top.
func (p Palette) Overlay(o Palette) Palette {
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}
	return Palette{
		Background:  pick(p.Background, o.Background),
		Comment:     pick(p.Comment, o.Comment),
		CurrentLine: pick(p.CurrentLine, o.CurrentLine),
		Cyan:        pick(p.Cyan, o.Cyan),
		Foreground:  pick(p.Foreground, o.Foreground),
		Green:       pick(p.Green, o.Green),
		Orange:      pick(p.Orange, o.Orange),
		Pink:        pick(p.Pink, o.Pink),
		Purple:      pick(p.Purple, o.Purple),
		Red:         pick(p.Red, o.Red),
		Selection:   pick(p.Selection, o.Selection),
		Yellow:      pick(p.Yellow, o.Yellow),
	}
}
