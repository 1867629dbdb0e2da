package console

import (
	"context"
	"encoding/json"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// markup writes one component's HTML; the first write error sticks
type markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (m *markup) raw(s string) {
	if m.err == nil {
		_, m.err = io.WriteString(m.w, s)
	}
}

func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

func (m *markup) attr(name, value string) {
	m.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (m *markup) href(name, u string) {
	m.attr(name, string(templ.URL(u)))
}

func (m *markup) flag(name string, on bool) {
	if on {
		m.raw(" " + name)
	}
}

func (m *markup) child(c templ.Component) {
	if m.err == nil {
		m.err = c.Render(m.ctx, m.w)
	}
}

func component(build func(m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		m := &markup{ctx: ctx, w: w}
		build(m)
		return m.err
	})
}

func layoutPage(v pageView, content templ.Component) templ.Component {
	return component(func(m *markup) {
		m.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		m.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		m.text(v.Title + " · League Panel")
		m.raw(`</title><link rel="stylesheet" href="/static/console.css"></head><body>`)
		if v.Username != "" {
			m.raw(`<header class="topbar"><span class="brand">League Panel</span><nav>`)
			for _, item := range v.Nav {
				m.raw(`<a`)
				m.href("href", item.URL)
				if item.Active {
					m.attr("class", "active")
				}
				m.raw(`>`)
				m.text(item.Label)
				m.raw(`</a>`)
			}
			m.raw(`</nav><span class="operator">`)
			m.text(v.Username)
			m.raw(`</span><form method="post" action="/logout" class="inline"><button type="submit">Sign out</button></form></header>`)
		}
		m.raw(`<main><h1>`)
		m.text(v.Title)
		m.raw(`</h1>`)
		if v.Flash != nil {
			m.raw(`<div`)
			m.attr("class", "banner "+v.Flash.Kind)
			m.raw(`><pre>`)
			m.text(v.Flash.Message)
			m.raw(`</pre></div>`)
		}
		m.child(content)
		m.raw(`</main></body></html>`)
	})
}

func banner(message string) templ.Component {
	return component(func(m *markup) {
		if message == "" {
			return
		}
		m.raw(`<div class="banner error" role="alert">`)
		m.text(message)
		m.raw(`</div>`)
	})
}

func loginPage(v loginView) templ.Component {
	return component(func(m *markup) {
		m.raw(`<form method="post" action="/login" class="record login">`)
		m.child(banner(v.Error))
		m.raw(`<label class="field"><span>Username</span><input type="text" name="username"`)
		m.attr("value", v.Username)
		m.raw(` autocomplete="username" required autofocus></label>`)
		m.raw(`<label class="field"><span>Password</span><input type="password" name="password" autocomplete="current-password" required></label>`)
		m.raw(`<div class="buttons"><button type="submit" class="primary">Sign in</button></div></form>`)
	})
}

func errorPage(v errorView) templ.Component {
	return component(func(m *markup) {
		m.child(banner(v.Message))
		m.raw(`<p><a class="button"`)
		m.href("href", v.BackURL)
		m.raw(`>`)
		m.text(v.BackLabel)
		m.raw(`</a></p>`)
	})
}

func formPage(v formView) templ.Component {
	return component(func(m *markup) {
		m.child(banner(v.Error))
		m.raw(`<form method="post"`)
		m.href("action", v.Action)
		m.raw(` class="record">`)
		for _, f := range v.Fields {
			m.child(field(f))
		}
		if v.Next != "" {
			m.raw(`<input type="hidden" name="next"`)
			m.attr("value", v.Next)
			m.raw(`>`)
		}
		m.raw(`<div class="buttons"><button type="submit" class="primary">`)
		m.text(v.Submit)
		m.raw(`</button><a`)
		m.href("href", v.BackURL)
		m.raw(`>Cancel</a></div></form>`)
	})
}

func field(f fieldView) templ.Component {
	return component(func(m *markup) {
		class := "field"
		if f.Type == "checkbox" {
			class += " check"
		}
		m.raw(`<label`)
		m.attr("class", class)
		m.raw(`><span>`)
		m.text(f.Label)
		if f.Required {
			m.raw(` *`)
		}
		m.raw(`</span>`)

		switch f.Type {
		case "checkbox":
			m.raw(`<input type="checkbox"`)
			m.attr("name", f.Name)
			m.raw(` value="true"`)
			m.flag("checked", f.Checked)
			m.raw(`>`)
		case "select":
			m.raw(`<select`)
			m.attr("name", f.Name)
			m.flag("required", f.Required)
			m.raw(`>`)
			for _, o := range f.Options {
				m.raw(`<option`)
				m.attr("value", o.Value)
				m.flag("selected", o.Selected)
				m.raw(`>`)
				m.text(o.Label)
				m.raw(`</option>`)
			}
			m.raw(`</select>`)
		case "textarea":
			m.raw(`<textarea`)
			m.attr("name", f.Name)
			m.raw(` rows="3">`)
			m.text(f.Value)
			m.raw(`</textarea>`)
		case "readonly":
			m.raw(`<input type="text"`)
			m.attr("name", f.Name)
			m.attr("value", f.Value)
			m.raw(` readonly>`)
		default:
			m.raw(`<input`)
			m.attr("type", f.Type)
			m.attr("name", f.Name)
			m.attr("value", f.Value)
			if f.Step != "" {
				m.attr("step", f.Step)
			}
			m.flag("required", f.Required)
			m.raw(`>`)
		}
		m.raw(`</label>`)
	})
}

func action(a actionView) templ.Component {
	return component(func(m *markup) {
		m.raw(`<form method="post"`)
		m.href("action", a.URL)
		m.raw(` class="inline"`)
		if a.Confirm != "" {
			// json.Marshal escapes <, > and & so the literal is safe inside a script attribute
			literal, err := json.Marshal(a.Confirm)
			if err != nil {
				m.err = err
				return
			}
			m.attr("onsubmit", "return confirm("+string(literal)+")")
		}
		m.raw(`>`)
		if a.Next != "" {
			m.raw(`<input type="hidden" name="next"`)
			m.attr("value", a.Next)
			m.raw(`>`)
		}
		m.raw(`<button type="submit"`)
		if a.Danger {
			m.attr("class", "danger")
		}
		m.raw(`>`)
		m.text(a.Label)
		m.raw(`</button></form>`)
	})
}

func pager(p pagerView) templ.Component {
	return component(func(m *markup) {
		m.raw(`<div class="pager"><span>`)
		if p.Total > 0 {
			m.text("Showing " + strconv.Itoa(p.From) + "–" + strconv.Itoa(p.To) + " of " + strconv.Itoa(p.Total))
		} else {
			m.raw(`Showing 0 of 0`)
		}
		m.raw(`</span>`)
		cursor(m, "Previous", p.PrevURL)
		cursor(m, "Next", p.NextURL)
		m.raw(`</div>`)
	})
}

func cursor(m *markup, label, u string) {
	if u == "" {
		m.raw(`<button disabled>` + label + `</button>`)
		return
	}
	m.raw(`<a class="button"`)
	m.href("href", u)
	m.raw(`>` + label + `</a>`)
}

func table(v listView) templ.Component {
	return component(func(m *markup) {
		m.raw(`<div class="toolbar">`)
		if len(v.Filters) > 0 {
			m.raw(`<form method="get" class="filters">`)
			for _, f := range v.Filters {
				m.child(field(f))
			}
			m.raw(`<button type="submit">Apply</button></form>`)
		}
		for _, a := range v.Actions {
			m.child(action(a))
		}
		if v.NewURL != "" {
			m.raw(`<a class="button primary"`)
			m.href("href", v.NewURL)
			m.raw(`>`)
			m.text(v.NewLabel)
			m.raw(`</a>`)
		}
		m.raw(`</div>`)

		for _, p := range v.Panels {
			m.raw(`<details class="panel" open><summary>`)
			m.text(p.Title)
			m.raw(`</summary><pre>`)
			m.text(p.Body)
			m.raw(`</pre></details>`)
		}

		if len(v.Rows) == 0 {
			m.raw(`<p class="empty">`)
			m.text(v.Empty)
			m.raw(`</p>`)
		} else {
			m.raw(`<table><thead><tr>`)
			for _, c := range v.Columns {
				m.raw(`<th>`)
				m.text(c)
				m.raw(`</th>`)
			}
			m.raw(`<th></th></tr></thead><tbody>`)
			for _, row := range v.Rows {
				m.raw(`<tr>`)
				for _, c := range row.Cells {
					m.child(cell(c))
				}
				m.raw(`<td class="row-actions">`)
				for _, l := range row.Links {
					m.raw(`<a`)
					m.href("href", l.URL)
					m.raw(`>`)
					m.text(l.Label)
					m.raw(`</a>`)
				}
				for _, a := range row.Actions {
					m.child(action(a))
				}
				m.raw(`</td></tr>`)
			}
			m.raw(`</tbody></table>`)
		}
		m.child(pager(v.Pager))
	})
}

func cell(c cellView) templ.Component {
	return component(func(m *markup) {
		m.raw(`<td`)
		if c.Title != "" {
			m.attr("title", c.Title)
		}
		m.raw(`>`)
		if style, ok := swatchStyle(c.Swatch); ok {
			m.raw(`<span class="swatch"`)
			m.attr("style", string(style))
			m.raw(`></span>`)
		}
		m.text(c.Text)
		m.raw(`</td>`)
	})
}

func listPage(v listView) templ.Component {
	return table(v)
}

func detailsPage(v detailsView) templ.Component {
	return component(func(m *markup) {
		m.raw(`<dl class="summary">`)
		for _, s := range v.Summary {
			m.raw(`<dt>`)
			m.text(s.Label)
			m.raw(`</dt><dd>`)
			m.text(s.Value)
			m.raw(`</dd>`)
		}
		m.raw(`</dl><p><a class="button"`)
		m.href("href", v.EditURL)
		m.raw(`>Edit tournament</a> <a href="/tournaments">Back to tournaments</a></p><nav class="tabs">`)
		for _, tab := range v.Tabs {
			m.raw(`<a`)
			m.href("href", tab.URL)
			if tab.Active {
				m.attr("class", "active")
			}
			m.raw(`>`)
			m.text(tab.Label)
			m.raw(`</a>`)
		}
		m.raw(`</nav>`)
		m.child(table(v.List))
	})
}
