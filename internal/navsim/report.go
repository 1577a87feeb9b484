package navsim

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// SupportedLanguages are the report languages with bundled messages.
var SupportedLanguages = []language.Tag{language.English, language.German}

func newBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+entry.Name()); err != nil {
			return nil, fmt.Errorf("navsim: load %s: %w", entry.Name(), err)
		}
	}
	return bundle, nil
}

// Styles decorates report lines. Nil fields print text unchanged.
type Styles struct {
	Heading func(...string) string
	Step    func(...string) string
	Detail  func(...string) string
	Warning func(...string) string
	Success func(...string) string
	Failure func(...string) string
}

func apply(style func(...string) string, text string) string {
	if style == nil {
		return text
	}
	return style(text)
}

// Printer writes localized scenario reports.
type Printer struct {
	w         io.Writer
	localizer *i18n.Localizer
	styles    Styles
}

type PrinterOption func(*Printer)

func WithStyles(styles Styles) PrinterOption {
	return func(p *Printer) { p.styles = styles }
}

// NewPrinter creates a printer for lang, a BCP 47 tag such as "en" or "de-AT".
// Languages without bundled messages fall back to English.
func NewPrinter(w io.Writer, lang string, opts ...PrinterOption) (*Printer, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("navsim: language %q: %w", lang, err)
	}

	bundle, err := newBundle()
	if err != nil {
		return nil, err
	}

	matcher := language.NewMatcher(SupportedLanguages)
	_, index, _ := matcher.Match(tag)

	p := &Printer{
		w:         w,
		localizer: i18n.NewLocalizer(bundle, SupportedLanguages[index].String()),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Printer) text(id string, data map[string]any) string {
	return p.localizer.MustLocalize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

func (p *Printer) plural(id string, count int, data map[string]any) string {
	if data == nil {
		data = map[string]any{}
	}
	data["Count"] = count
	return p.localizer.MustLocalize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data, PluralCount: count})
}

func list(names []string) string {
	return "[" + strings.Join(names, " ") + "]"
}

// PrintReport writes every snapshot of report followed by a summary line.
func (p *Printer) PrintReport(report *Report) {
	fmt.Fprintln(p.w, apply(p.styles.Heading, p.text("ScenarioHeading", map[string]any{"Name": report.Scenario})))

	for _, s := range report.Snapshots {
		p.PrintSnapshot(s)
	}

	fmt.Fprintln(p.w, apply(p.styles.Success, p.plural("Summary", len(report.Snapshots), map[string]any{
		"Released": report.Released(),
	})))
}

// PrintSnapshot writes one step.
func (p *Printer) PrintSnapshot(s Snapshot) {
	step := p.text("StepLine", map[string]any{"Index": s.Index, "Op": string(s.Op), "Target": s.Target})
	fmt.Fprintln(p.w, apply(p.styles.Step, strings.TrimSpace(step)))

	p.detail(p.text("VisibleLine", map[string]any{"Stack": list(s.Visible)}))
	p.detail(p.text("AttachedLine", map[string]any{"Children": list(s.Attached)}))

	if len(s.Released) > 0 {
		p.detail(p.plural("ReleasedLine", len(s.Released), map[string]any{"Names": list(s.Released)}))
	}
	if s.GestureIgnored {
		fmt.Fprintln(p.w, "   "+apply(p.styles.Warning, p.text("GestureIgnored", nil)))
	}
	if s.Pending > 0 {
		p.detail(p.plural("PendingLine", s.Pending, nil))
	}

	state := p.text("GestureDisabled", nil)
	if s.GestureEnabled {
		state = p.text("GestureEnabled", nil)
	}
	p.detail(p.text("GestureLine", map[string]any{"State": state}))
}

// PrintError writes a failed step.
func (p *Printer) PrintError(err error) {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		fmt.Fprintln(p.w, apply(p.styles.Failure, p.text("StepFailed", map[string]any{
			"Index": stepErr.Index,
			"Error": stepErr.Err,
		})))
		return
	}
	fmt.Fprintln(p.w, apply(p.styles.Failure, err.Error()))
}

func (p *Printer) detail(text string) {
	fmt.Fprintln(p.w, "   "+apply(p.styles.Detail, text))
}
