package k9s

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/bianoble/userenv/internal/field"
)

const document = "k9s skin"

var skinTemplate = template.Must(template.New("skin").Funcs(template.FuncMap{
	"q":    quote,
	"list": list,
}).Parse(`k9s:
  # General K9s styles
  body:
    fgColor: {{ q .Body.FgColor }}
    bgColor: {{ q .Body.BgColor }}
    logoColor: {{ q .Body.LogoColor }}
  prompt:
    fgColor: {{ q .Prompt.FgColor }}
    bgColor: {{ q .Prompt.BgColor }}
    suggestColor: {{ q .Prompt.SuggestColor }}
  info:
    fgColor: {{ q .Info.FgColor }}
    sectionColor: {{ q .Info.SectionColor }}
  dialog:
    fgColor: {{ q .Dialog.FgColor }}
    bgColor: {{ q .Dialog.BgColor }}
    buttonFgColor: {{ q .Dialog.ButtonFgColor }}
    buttonBgColor: {{ q .Dialog.ButtonBgColor }}
    buttonFocusFgColor: {{ q .Dialog.ButtonFocusFgColor }}
    buttonFocusBgColor: {{ q .Dialog.ButtonFocusBgColor }}
    labelFgColor: {{ q .Dialog.LabelFgColor }}
    fieldFgColor: {{ q .Dialog.FieldFgColor }}
  frame:
    border:
      fgColor: {{ q .Frame.Border.FgColor }}
      focusColor: {{ q .Frame.Border.FocusColor }}
    menu:
      fgColor: {{ q .Frame.Menu.FgColor }}
      keyColor: {{ q .Frame.Menu.KeyColor }}
      numKeyColor: {{ q .Frame.Menu.NumKeyColor }}
    crumbs:
      fgColor: {{ q .Frame.Crumbs.FgColor }}
      bgColor: {{ q .Frame.Crumbs.BgColor }}
      activeColor: {{ q .Frame.Crumbs.ActiveColor }}
    status:
      newColor: {{ q .Frame.Status.NewColor }}
      modifyColor: {{ q .Frame.Status.ModifyColor }}
      addColor: {{ q .Frame.Status.AddColor }}
      errorColor: {{ q .Frame.Status.ErrorColor }}
      highlightcolor: {{ q .Frame.Status.HighlightColor }}
      killColor: {{ q .Frame.Status.KillColor }}
      completedColor: {{ q .Frame.Status.CompletedColor }}
    title:
      fgColor: {{ q .Frame.Title.FgColor }}
      bgColor: {{ q .Frame.Title.BgColor }}
      highlightColor: {{ q .Frame.Title.HighlightColor }}
      counterColor: {{ q .Frame.Title.CounterColor }}
      filterColor: {{ q .Frame.Title.FilterColor }}
  views:
    charts:
      bgColor: {{ q .Views.Charts.BgColor }}
      defaultDialColors:{{ list .Views.Charts.DefaultDialColors }}
      defaultChartColors:{{ list .Views.Charts.DefaultChartColors }}
    table:
      fgColor: {{ q .Views.Table.FgColor }}
      bgColor: {{ q .Views.Table.BgColor }}
      cursorFgColor: {{ q .Views.Table.CursorFgColor }}
      cursorBgColor: {{ q .Views.Table.CursorBgColor }}
      header:
        fgColor: {{ q .Views.Table.Header.FgColor }}
        bgColor: {{ q .Views.Table.Header.BgColor }}
        sorterColor: {{ q .Views.Table.Header.SorterColor }}
    xray:
      fgColor: {{ q .Views.Xray.FgColor }}
      bgColor: {{ q .Views.Xray.BgColor }}
      cursorColor: {{ q .Views.Xray.CursorColor }}
      graphicColor: {{ q .Views.Xray.GraphicColor }}
      showIcons: {{ .Views.Xray.ShowIcons }}
    yaml:
      keyColor: {{ q .Views.YAML.KeyColor }}
      colonColor: {{ q .Views.YAML.ColonColor }}
      valueColor: {{ q .Views.YAML.ValueColor }}
    logs:
      fgColor: {{ q .Views.Logs.FgColor }}
      bgColor: {{ q .Views.Logs.BgColor }}
      indicator:
        fgColor: {{ q .Views.Logs.Indicator.FgColor }}
        bgColor: {{ q .Views.Logs.Indicator.BgColor }}
`))

// Render returns the skin YAML. The output is parsed back before it is
// returned so a value that breaks the document is reported, not written.
func (s *Skin) Render() (string, error) {
	var buf bytes.Buffer
	if err := skinTemplate.Execute(&buf, s.style); err != nil {
		return "", &field.SerializeError{Document: document, Err: err}
	}

	var check map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &check); err != nil {
		return "", &field.SerializeError{Document: document, Err: fmt.Errorf("rendered skin is not valid YAML: %w", err)}
	}
	return buf.String(), nil
}

// quote renders a YAML single-quoted scalar.
func quote(value string) (string, error) {
	if strings.ContainsAny(value, "\r\n") {
		return "", fmt.Errorf("value %q contains a line break", value)
	}
	if !utf8.ValidString(value) {
		return "", fmt.Errorf("value %q is not valid UTF-8", value)
	}
	return "'" + strings.ReplaceAll(value, "'", "''") + "'", nil
}

// list renders a block sequence of quoted colors under the charts section.
func list(colors []string) (string, error) {
	var b strings.Builder
	for _, c := range colors {
		q, err := quote(c)
		if err != nil {
			return "", err
		}
		b.WriteString("\n        - ")
		b.WriteString(q)
	}
	return b.String(), nil
}
