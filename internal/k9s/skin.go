// Package k9s renders k9s skin files.
package k9s

import (
	"context"
	"fmt"
	"slices"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/file"
)

type Body struct {
	FgColor   string
	BgColor   string
	LogoColor string
}

type Prompt struct {
	FgColor      string
	BgColor      string
	SuggestColor string
}

type Info struct {
	FgColor      string
	SectionColor string
}

type Dialog struct {
	FgColor            string
	BgColor            string
	ButtonFgColor      string
	ButtonBgColor      string
	ButtonFocusFgColor string
	ButtonFocusBgColor string
	LabelFgColor       string
	FieldFgColor       string
}

type Frame struct {
	Border struct {
		FgColor    string
		FocusColor string
	}
	Menu struct {
		FgColor     string
		KeyColor    string
		NumKeyColor string
	}
	Crumbs struct {
		FgColor     string
		BgColor     string
		ActiveColor string
	}
	Status struct {
		NewColor       string
		ModifyColor    string
		AddColor       string
		ErrorColor     string
		HighlightColor string
		KillColor      string
		CompletedColor string
	}
	Title struct {
		FgColor        string
		BgColor        string
		HighlightColor string
		CounterColor   string
		FilterColor    string
	}
}

type Views struct {
	Charts struct {
		BgColor            string
		DefaultDialColors  []string
		DefaultChartColors []string
	}
	Table struct {
		FgColor       string
		BgColor       string
		CursorFgColor string
		CursorBgColor string
		Header        struct {
			FgColor     string
			BgColor     string
			SorterColor string
		}
	}
	Xray struct {
		FgColor      string
		BgColor      string
		CursorColor  string
		GraphicColor string
		ShowIcons    bool
	}
	YAML struct {
		KeyColor   string
		ColonColor string
		ValueColor string
	}
	Logs struct {
		FgColor   string
		BgColor   string
		Indicator struct {
			FgColor string
			BgColor string
		}
	}
}

// Style is the full set of skin sections.
type Style struct {
	Body   Body
	Prompt Prompt
	Info   Info
	Dialog Dialog
	Frame  Frame
	Views  Views
}

// NewStyle derives every skin color from a palette.
func NewStyle(p Palette) Style {
	var s Style

	s.Body = Body{FgColor: p.Foreground, BgColor: p.Background, LogoColor: p.Purple}
	s.Prompt = Prompt{FgColor: p.Foreground, BgColor: p.Background, SuggestColor: p.Purple}
	s.Info = Info{FgColor: p.Pink, SectionColor: p.Foreground}
	s.Dialog = Dialog{
		FgColor:            p.Foreground,
		BgColor:            p.Background,
		ButtonFgColor:      p.Foreground,
		ButtonBgColor:      p.Purple,
		ButtonFocusFgColor: p.Yellow,
		ButtonFocusBgColor: p.Pink,
		LabelFgColor:       p.Orange,
		FieldFgColor:       p.Foreground,
	}

	f := &s.Frame
	f.Border.FgColor = p.Selection
	f.Border.FocusColor = p.CurrentLine
	f.Menu.FgColor = p.Foreground
	f.Menu.KeyColor = p.Pink
	f.Menu.NumKeyColor = p.Pink
	f.Crumbs.FgColor = p.Foreground
	f.Crumbs.BgColor = p.CurrentLine
	f.Crumbs.ActiveColor = p.CurrentLine
	f.Status.NewColor = p.Cyan
	f.Status.ModifyColor = p.Purple
	f.Status.AddColor = p.Green
	f.Status.ErrorColor = p.Red
	f.Status.HighlightColor = p.Orange
	f.Status.KillColor = p.Comment
	f.Status.CompletedColor = p.Comment
	f.Title.FgColor = p.Foreground
	f.Title.BgColor = p.CurrentLine
	f.Title.HighlightColor = p.Orange
	f.Title.CounterColor = p.Purple
	f.Title.FilterColor = p.Pink

	v := &s.Views
	v.Charts.BgColor = p.Background
	v.Charts.DefaultDialColors = []string{p.Purple, p.Red}
	v.Charts.DefaultChartColors = []string{p.Purple, p.Red}
	v.Table.FgColor = p.Foreground
	v.Table.BgColor = p.Background
	v.Table.CursorFgColor = p.Foreground
	v.Table.CursorBgColor = p.CurrentLine
	v.Table.Header.FgColor = p.Foreground
	v.Table.Header.BgColor = p.Background
	v.Table.Header.SorterColor = p.Cyan
	v.Xray.FgColor = p.Foreground
	v.Xray.BgColor = p.Background
	v.Xray.CursorColor = p.CurrentLine
	v.Xray.GraphicColor = p.Purple
	v.YAML.KeyColor = p.Pink
	v.YAML.ColonColor = p.Purple
	v.YAML.ValueColor = p.Foreground
	v.Logs.FgColor = p.Foreground
	v.Logs.BgColor = p.Background
	v.Logs.Indicator.FgColor = p.Foreground
	v.Logs.Indicator.BgColor = p.Purple

	return s
}

// Skin builds a k9s skin file.
type Skin struct {
	name    string
	systems []artifact.System
	spent   bool
	style   Style
}

// New returns a Skin with every color derived from palette.
func New(name string, systems []artifact.System, palette Palette) *Skin {
	return &Skin{
		name:    name,
		systems: append([]artifact.System(nil), systems...),
		style:   NewStyle(palette),
	}
}

func (s *Skin) Name() string {
	return s.name
}

func (s *Skin) WithBody(mutate func(*Body)) *Skin {
	mutate(&s.style.Body)
	return s
}

func (s *Skin) WithPrompt(mutate func(*Prompt)) *Skin {
	mutate(&s.style.Prompt)
	return s
}

func (s *Skin) WithInfo(mutate func(*Info)) *Skin {
	mutate(&s.style.Info)
	return s
}

func (s *Skin) WithDialog(mutate func(*Dialog)) *Skin {
	mutate(&s.style.Dialog)
	return s
}

func (s *Skin) WithFrame(mutate func(*Frame)) *Skin {
	mutate(&s.style.Frame)
	return s
}

func (s *Skin) WithViews(mutate func(*Views)) *Skin {
	mutate(&s.style.Views)
	return s
}

// WithChartColors sets both the dial and the chart color sequences.
func (s *Skin) WithChartColors(colors ...string) *Skin {
	s.style.Views.Charts.DefaultDialColors = append([]string(nil), colors...)
	s.style.Views.Charts.DefaultChartColors = append([]string(nil), colors...)
	return s
}

func (s *Skin) WithShowIcons(show bool) *Skin {
	s.style.Views.Xray.ShowIcons = show
	return s
}

// Style returns a copy of the current style. The chart color slices are
// copied too, so editing the result never changes the skin.
func (s *Skin) Style() Style {
	st := s.style
	st.Views.Charts.DefaultDialColors = slices.Clone(st.Views.Charts.DefaultDialColors)
	st.Views.Charts.DefaultChartColors = slices.Clone(st.Views.Charts.DefaultChartColors)
	return st
}

// Build renders the skin into a file artifact. A Skin can be built once.
func (s *Skin) Build(ctx context.Context, b artifact.Builder) (artifact.ID, error) {
	if s.spent {
		return "", fmt.Errorf("building %s: %w", s.name, artifact.ErrSpent)
	}
	s.spent = true

	content, err := s.Render()
	if err != nil {
		return "", err
	}
	return file.Create(ctx, b, s.name, content, s.systems)
}
