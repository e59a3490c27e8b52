// Package render turns display snapshots into HTML: the category tab bar, the
// menu grid with its loading, error and empty states, and the full page.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Lixing-Zhang/menuboard/internal/display"
	"github.com/Lixing-Zhang/menuboard/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Mode selects how the page filters by category.
type Mode string

const (
	// ModeLive pages fetch filtered fragments from the display server.
	ModeLive Mode = "live"
	// ModeStatic pages carry every item and filter in the browser.
	ModeStatic Mode = "static"
)

// Options configures a Renderer. Zero values fall back to defaults.
type Options struct {
	Locale           string
	CurrencySymbol   string
	PlaceholderImage string
	Title            string
	Labels           Labels
	Mode             Mode
	BasePath         string // page URL used by tab links and the retry control
	AssetPrefix      string // where css/, js/ and img/ are served
	FragmentsPath    string // live mode only
}

// Renderer renders views. It is safe for concurrent use.
type Renderer struct {
	opts      Options
	lang      language.Tag
	printer   *message.Printer
	tmpl      *template.Template
	sanitizer *bluemonday.Policy
}

// New parses the templates and prepares the locale printer.
func New(opts Options) (*Renderer, error) {
	opts = withDefaults(opts)

	lang, err := language.Parse(opts.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", opts.Locale, err)
	}

	tmpl, err := template.New("menuboard").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		opts:      opts,
		lang:      lang,
		printer:   message.NewPrinter(lang),
		tmpl:      tmpl,
		sanitizer: descriptionPolicy(),
	}, nil
}

func withDefaults(opts Options) Options {
	if opts.Locale == "" {
		opts.Locale = "ko-KR"
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "₩"
	}
	if opts.PlaceholderImage == "" {
		opts.PlaceholderImage = "/static/img/default-menu.svg"
	}
	if opts.Title == "" {
		opts.Title = "Menu"
	}
	if opts.Labels == (Labels{}) {
		opts.Labels = KoreanLabels()
	}
	if opts.Mode == "" {
		opts.Mode = ModeLive
	}
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	if opts.AssetPrefix == "" {
		opts.AssetPrefix = "/static"
	}
	if opts.FragmentsPath == "" && opts.Mode == ModeLive {
		opts.FragmentsPath = "/fragments"
	}
	return opts
}

// descriptionPolicy keeps simple inline formatting and strips everything else.
func descriptionPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("br", "em", "strong", "b", "i")
	return p
}

// FormatPrice renders a price with the locale's thousands separators and the
// currency glyph, e.g. 12345 → ₩12,345 for ko-KR.
func (r *Renderer) FormatPrice(price int64) string {
	return r.opts.CurrencySymbol + r.printer.Sprintf("%d", price)
}

// Options returns the effective options.
func (r *Renderer) Options() Options {
	return r.opts
}

// RenderTabs writes the category tab bar.
func (r *Renderer) RenderTabs(w io.Writer, view display.View) error {
	return r.tmpl.ExecuteTemplate(w, "tabs", r.tabs(view))
}

// RenderGrid writes the menu grid for the view's grid state.
func (r *Renderer) RenderGrid(w io.Writer, view display.View) error {
	return r.tmpl.ExecuteTemplate(w, "grid", r.grid(view))
}

// RenderLoading writes the loading placeholder shown while menus are fetched.
func (r *Renderer) RenderLoading(w io.Writer) error {
	return r.tmpl.ExecuteTemplate(w, "loading", r.opts.Labels)
}

// RenderPage writes the full document.
func (r *Renderer) RenderPage(w io.Writer, view display.View) error {
	data := pageData{
		Lang:          r.lang.String(),
		Title:         r.opts.Title,
		Mode:          string(r.opts.Mode),
		AssetPrefix:   r.opts.AssetPrefix,
		FragmentsPath: r.opts.FragmentsPath,
		Labels:        r.opts.Labels,
		Tabs:          r.tabs(view),
		Grid:          r.grid(view),
	}
	return r.tmpl.ExecuteTemplate(w, "page", data)
}

// PageURL returns the page address for a category selection.
func (r *Renderer) PageURL(categoryID *int64) string {
	if categoryID == nil {
		return r.opts.BasePath
	}
	return r.opts.BasePath + "?" + url.Values{"category_id": {strconv.FormatInt(*categoryID, 10)}}.Encode()
}

type pageData struct {
	Lang          string
	Title         string
	Mode          string
	AssetPrefix   string
	FragmentsPath string
	Labels        Labels
	Tabs          []tabData
	Grid          gridData
}

type tabData struct {
	ID     string
	Name   string
	Href   string
	Active bool
}

type gridData struct {
	State     string
	Cards     []cardData
	Labels    Labels
	RetryHref string
}

type cardData struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description template.HTML
	Price       string
	Image       string
	Placeholder string
	SoldOut     bool
}

func (r *Renderer) tabs(view display.View) []tabData {
	tabs := view.Tabs(r.opts.Labels.All)
	out := make([]tabData, 0, len(tabs))
	for _, tab := range tabs {
		td := tabData{Name: tab.Name, Active: tab.Active}
		if tab.ID != nil {
			td.ID = strconv.FormatInt(*tab.ID, 10)
		}
		if r.opts.Mode == ModeStatic {
			td.Href = "#menu"
		} else {
			td.Href = r.PageURL(tab.ID)
		}
		out = append(out, td)
	}
	return out
}

func (r *Renderer) grid(view display.View) gridData {
	g := gridData{
		Labels:    r.opts.Labels,
		RetryHref: r.PageURL(view.CurrentCategory),
	}

	switch view.GridState() {
	case display.StateErrored:
		g.State = "errored"
	case display.StateIdle, display.StateLoading:
		g.State = "loading"
	default:
		g.State = "loaded"
		g.Cards = make([]cardData, 0, len(view.Menus))
		for _, item := range view.Menus {
			g.Cards = append(g.Cards, r.card(item))
		}
	}
	return g
}

func (r *Renderer) card(item models.MenuItem) cardData {
	return cardData{
		ID:          item.ID,
		CategoryID:  item.CategoryID,
		Name:        item.Name,
		Description: template.HTML(r.sanitizer.Sanitize(item.DescriptionText())),
		Price:       r.FormatPrice(item.Price),
		Image:       item.Image(r.opts.PlaceholderImage),
		Placeholder: r.opts.PlaceholderImage,
		SoldOut:     !item.IsAvailable,
	}
}
