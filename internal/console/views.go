package console

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/league-panel/internal/logging"
	"github.com/league-panel/internal/types"
)

//go:embed static/*
var assets embed.FS

func staticHandler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

type navItem struct {
	Label  string
	URL    string
	Active bool
}

var navigation = []navItem{
	{Label: "Tokens", URL: "/tokens"},
	{Label: "Cards", URL: "/cards"},
	{Label: "Rarities", URL: "/rarities"},
	{Label: "Pack types", URL: "/pack-types"},
	{Label: "Reward types", URL: "/reward-types"},
	{Label: "Tournaments", URL: "/tournaments"},
	{Label: "Prizes", URL: "/prizes"},
	{Label: "Users", URL: "/users"},
}

// pageView is what the layout renders around the page content
type pageView struct {
	Title    string
	Username string
	Nav      []navItem
	Flash    *flash
}

// listView is a table screen
type listView struct {
	NewURL   string
	NewLabel string
	Filters  []fieldView
	Panels   []panelView
	Actions  []actionView
	Columns  []string
	Rows     []rowView
	Empty    string
	Pager    pagerView
}

type rowView struct {
	Cells   []cellView
	Links   []linkView
	Actions []actionView
}

type cellView struct {
	Text   string
	Title  string
	Swatch string
}

type linkView struct {
	Label string
	URL   string
}

// actionView is a POST button; Next is where the handler returns afterwards
type actionView struct {
	Label   string
	URL     string
	Next    string
	Confirm string
	Danger  bool
}

type panelView struct {
	Title string
	Body  string
}

type pagerView struct {
	From    int
	To      int
	Total   int
	PrevURL string
	NextURL string
}

// formView is an edit screen
type formView struct {
	Action  string
	BackURL string
	Next    string
	Submit  string
	Error   string
	Fields  []fieldView
}

type fieldView struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Checked  bool
	Required bool
	Step     string
	Options  []optionView
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type errorView struct {
	Message   string
	BackURL   string
	BackLabel string
}

type loginView struct {
	Username string
	Error    string
}

// render writes content inside the layout. The page renders into a buffer
// first so a failure still produces a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, title string, content templ.Component) {
	view := pageView{
		Title: title,
		Flash: takeFlash(w, r),
	}
	if ctrl := controllerFrom(r); ctrl != nil && ctrl.IsAuthenticated(r.Context()) {
		view.Username = ctrl.Username(r.Context())
		view.Nav = activeNav(r.URL.Path)
	}

	var buf bytes.Buffer
	if err := layoutPage(view, content).Render(r.Context(), &buf); err != nil {
		logging.FromContext(r.Context()).WithError(err).WithField("title", title).Error("page rendering failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func activeNav(path string) []navItem {
	items := make([]navItem, len(navigation))
	for i, item := range navigation {
		item.Active = path == item.URL || strings.HasPrefix(path, item.URL+"/")
		items[i] = item
	}
	return items
}

// pagerFor describes the window shown by p. The cursor links keep every other
// query parameter of the current screen.
func pagerFor[T any](r *http.Request, p *types.Page[T], pageSize int) pagerView {
	pv := pagerView{Total: p.Total}
	if len(p.Items) > 0 {
		pv.From = p.Skip + 1
		pv.To = p.Skip + len(p.Items)
	}

	limit := p.Limit
	if limit <= 0 {
		limit = pageSize
	}
	if p.HasPrev {
		prev := p.Skip - limit
		if prev < 0 {
			prev = 0
		}
		pv.PrevURL = withQuery(r.URL, "skip", strconv.Itoa(prev))
	}
	if p.HasNext {
		pv.NextURL = withQuery(r.URL, "skip", strconv.Itoa(p.Skip+limit))
	}
	return pv
}

// withQuery returns u's path and query with key set to value
func withQuery(u *url.URL, key, value string) string {
	q := u.Query()
	q.Set(key, value)
	return u.Path + "?" + q.Encode()
}

var cssColor = regexp.MustCompile(`^(?:#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|[a-zA-Z]{3,30}|(?:rgba?|hsla?)\(\s*[-+]?[0-9.]+(?:%|deg|turn|rad)?(?:(?:\s*[,/]\s*|\s+)[-+]?[0-9.]+(?:%|deg|turn|rad)?){2,3}\s*\))$`)

// swatchStyle returns the inline style for a color chip, or false when color
// is not a plain CSS color value
func swatchStyle(color string) (templ.SafeCSS, bool) {
	color = strings.TrimSpace(color)
	if !cssColor.MatchString(color) {
		return "", false
	}
	return templ.SafeCSS("background-color: " + color), true
}
