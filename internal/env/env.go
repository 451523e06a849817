package env

import (
	"bytes"
	"text/template"
)

type Map map[string]string

// Env holds the variables available to request templates. Global values come
// from configuration; Local values are set for a single request and win on
// lookup and rendering.
// Note: zero values (nil maps) are handled gracefully.
type Env struct {
	Global Map
	Local  Map
}

// New returns a pointer to Env with all internal maps initialized.
func New() *Env {
	return &Env{Global: Map{}, Local: Map{}}
}

// FromMap builds an Env whose Global layer is a copy of m.
func FromMap(m map[string]string) *Env {
	e := New()
	for k, v := range m {
		e.Global[k] = v
	}
	return e
}

// Set stores a Local value.
func (e *Env) Set(key, value string) {
	if e.Local == nil {
		e.Local = Map{}
	}
	e.Local[key] = value
}

// merged returns a combined map (Global then overridden by Local).
func (e *Env) merged() map[string]string {
	m := map[string]string{}
	if e == nil {
		return m
	}
	for k, v := range e.Global {
		m[k] = v
	}
	for k, v := range e.Local {
		m[k] = v
	}
	return m
}

// Render executes s as a text/template against the merged variables.
// Values are available flat ({{.project_id}}) and grouped ({{.env.project_id}}).
// A reference to a missing key is an error.
func (e *Env) Render(s string) (string, error) {
	if len(s) == 0 {
		return s, nil
	}
	t, err := template.New("gotmpl").Option("missingkey=error").Parse(s)
	if err != nil {
		return "", err
	}
	merged := e.merged()
	data := make(map[string]interface{}, len(merged)+1)
	for k, v := range merged {
		data[k] = v
	}
	data["env"] = merged
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
