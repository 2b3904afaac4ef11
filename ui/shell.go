package ui

import (
	"bytes"
	"github.com/myrjola/constellation/internal/errors"
	"github.com/myrjola/constellation/internal/page"
	"html/template"
)

const shellTemplate = "index"

// Shell is the parsed page shell template.
type Shell struct {
	t *template.Template
}

// ParseShell parses the shell and checks that it exposes every hook, so that a broken shell fails at start-up
// rather than on the first request.
func ParseShell() (*Shell, error) {
	// The functions are overridden on every execution.
	t, err := template.New(shellTemplate).Funcs(template.FuncMap{
		"nonce": func() string { return "" },
		"csrf":  func() string { return "" },
	}).ParseFS(Files, "templates/*.gohtml")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	s := &Shell{t: t}
	if _, err = s.Page("", ""); err != nil {
		return nil, errors.Wrap(err, "probe shell")
	}
	return s, nil
}

// Page executes the shell with the CSP nonce and the CSRF token of a request and resolves its hooks. Empty values
// are fine for a static rendition.
func (s *Shell) Page(nonce, csrfToken string) (*page.Page, error) {
	// A clone per execution keeps the shared template unexecuted and thus clonable.
	t, err := s.t.Clone()
	if err != nil {
		return nil, errors.Wrap(err, "clone shell")
	}
	t.Funcs(template.FuncMap{
		"nonce": func() string { return nonce },
		"csrf":  func() string { return csrfToken },
	})
	var buf bytes.Buffer
	if err = t.ExecuteTemplate(&buf, shellTemplate, nil); err != nil {
		return nil, errors.Wrap(err, "execute shell")
	}
	p, err := page.Parse(&buf)
	if err != nil {
		return nil, errors.Wrap(err, "resolve shell hooks")
	}
	return p, nil
}
