package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

// DefaultClientScript is the path of the browser client served with pages.
const DefaultClientScript = "/_patchwork/client.js"

// PageData contains everything needed to render a complete HTML page.
type PageData struct {
	// Body is the live view mounted inside the root container.
	Body vdom.Node

	Title string
	Lang  string // defaults to "en"
	Meta  []MetaTag

	StyleSheets []string
	Scripts     []ScriptTag

	// Endpoint is the WebSocket URL the client connects to for patches.
	Endpoint string

	// Seq is the sequence number of the rendered view. The client resumes
	// the patch stream after it.
	Seq uint64

	// ClientScript defaults to DefaultClientScript.
	ClientScript string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name    string
	Content string
	Charset string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string
	Module bool
	Defer  bool
	Inline string
}

// MountID is the id of the element that contains the rendered view.
const MountID = "patchwork-root"

// bootstrap is serialized into the page for the browser client.
type bootstrap struct {
	Endpoint  string           `json:"endpoint,omitempty"`
	Seq       uint64           `json:"seq"`
	Listeners map[int][]string `json:"listeners,omitempty"`
}

// RenderPage renders a complete HTML document to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	if err := r.renderPrologue(w, page); err != nil {
		return err
	}
	return r.renderBody(w, page)
}

func (r *Renderer) renderPrologue(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return err
	}
	return r.renderHead(w, page)
}

func (r *Renderer) renderBody(w io.Writer, page PageData) error {
	if _, err := fmt.Fprintf(w, "<body>\n<div id=\"%s\">", MountID); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "</div>\n"); err != nil {
		return err
	}
	if err := r.renderClientScript(w, page); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n  <meta charset=\"utf-8\">\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	for _, meta := range page.Meta {
		if err := renderMetaTag(w, meta); err != nil {
			return err
		}
	}
	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, "  <link rel=\"stylesheet\" href=\"%s\">\n", escapeAttr(href)); err != nil {
			return err
		}
	}
	for _, script := range page.Scripts {
		if err := renderScriptTag(w, script); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</head>\n")
	return err
}

func renderMetaTag(w io.Writer, meta MetaTag) error {
	if meta.Charset != "" {
		_, err := fmt.Fprintf(w, "  <meta charset=\"%s\">\n", escapeAttr(meta.Charset))
		return err
	}
	_, err := fmt.Fprintf(w, "  <meta name=\"%s\" content=\"%s\">\n", escapeAttr(meta.Name), escapeAttr(meta.Content))
	return err
}

func renderScriptTag(w io.Writer, script ScriptTag) error {
	if _, err := io.WriteString(w, "  <script"); err != nil {
		return err
	}
	if script.Src != "" {
		if _, err := fmt.Fprintf(w, ` src="%s"`, escapeAttr(script.Src)); err != nil {
			return err
		}
	}
	if script.Module {
		if _, err := io.WriteString(w, ` type="module"`); err != nil {
			return err
		}
	}
	if script.Defer {
		if _, err := io.WriteString(w, " defer"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, ">%s</script>\n", script.Inline)
	return err
}

// renderClientScript writes the bootstrap state and the client script tag.
// It runs after the body so the listener table is complete.
func (r *Renderer) renderClientScript(w io.Writer, page PageData) error {
	state, err := json.Marshal(bootstrap{
		Endpoint:  page.Endpoint,
		Seq:       page.Seq,
		Listeners: r.listeners,
	})
	if err != nil {
		return fmt.Errorf("render: marshal bootstrap: %w", err)
	}
	if _, err := fmt.Fprintf(w, "  <script id=\"patchwork-state\" type=\"application/json\">%s</script>\n", state); err != nil {
		return err
	}

	src := page.ClientScript
	if src == "" {
		src = DefaultClientScript
	}
	_, err = fmt.Fprintf(w, "  <script src=\"%s\" defer></script>\n", escapeAttr(src))
	return err
}
