package common

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// HTML writes markup to w and keeps the first error, so components can
// write a sequence of fragments and check once.
type HTML struct {
	ctx context.Context
	w   io.Writer
	err error
}

// NewHTML wraps w.
func NewHTML(ctx context.Context, w io.Writer) *HTML {
	return &HTML{ctx: ctx, w: w}
}

// Raw writes s unescaped.
func (h *HTML) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Rawf writes formatted markup unescaped; arguments must be trusted.
func (h *HTML) Rawf(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

// Text writes s with HTML escaping.
func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped.
func (h *HTML) Attr(name, value string) {
	h.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// Component renders a nested component.
func (h *HTML) Component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// Err returns the first write error.
func (h *HTML) Err() error {
	return h.err
}

// Component adapts a write function to templ.Component.
func Component(fn func(h *HTML)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(ctx, w)
		fn(h)
		return h.Err()
	})
}

// DatastarScript is the client bundle loaded by every page.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

// Page renders the document shell around body.
func Page(title string, isDev bool, body templ.Component) templ.Component {
	return Component(func(h *HTML) {
		h.Raw("<!doctype html>\n<html lang=\"en\">\n<head>\n")
		h.Raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw("<title>")
		h.Text(title + " - archdocs")
		h.Raw("</title>\n")
		h.Raw(`<link rel="stylesheet" href="/static/style.css">`)
		h.Raw(`<script type="module"`)
		h.Attr("src", DatastarScript)
		h.Raw("></script>\n</head>\n<body>\n")
		if isDev {
			h.Raw(`<div id="hotreload" data-init="@get('/reload')"></div>` + "\n")
		}
		h.Raw(`<header class="topbar"><a href="/" class="brand">archdocs</a></header>` + "\n")
		h.Raw(`<main id="ui-content">`)
		h.Component(body)
		h.Raw("</main>\n</body>\n</html>\n")
	})
}
