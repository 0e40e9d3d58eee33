package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

type Button struct {
	Label string
	URL   string
}

type Stat struct {
	Label string
	Value string
	Unit  string
}

// view is what the layout executes against; mailable fields are under .Data.
type view struct {
	Subject string
	AppURL  string
	Year    int
	Data    Mailable
}

type Renderer struct {
	appURL    string
	now       func() time.Time
	templates map[string]*template.Template
}

func NewRenderer(appURL string) (*Renderer, error) {
	funcs := template.FuncMap{
		"button": func(label, url string) Button { return Button{Label: label, URL: url} },
		"stat": func(label string, value any, unit string) Stat {
			return Stat{Label: label, Value: fmt.Sprint(value), Unit: unit}
		},
		"date": func(t time.Time) string { return t.Format("January 2, 2006") },
		"kg":   func(v float64) string { return fmt.Sprintf("%+.1f", v) },
	}

	base, err := template.New("layout.html").Funcs(funcs).
		ParseFS(templateFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail layout: %w", err)
	}

	r := &Renderer{
		appURL:    appURL,
		now:       time.Now,
		templates: make(map[string]*template.Template, len(templates)),
	}
	for _, name := range templates {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse mail template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Render executes the layout with the mailable's content block.
func (r *Renderer) Render(m Mailable) (string, error) {
	t, ok := r.templates[m.Template()]
	if !ok {
		return "", fmt.Errorf("unknown mail template %q", m.Template())
	}

	var buf bytes.Buffer
	err := t.ExecuteTemplate(&buf, "layout.html", view{
		Subject: m.Subject(),
		AppURL:  r.appURL,
		Year:    r.now().Year(),
		Data:    m,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", m.Template(), err)
	}
	return buf.String(), nil
}
