// Package ui embeds the page shell and the static assets.
package ui

import (
	"embed"
	"github.com/myrjola/constellation/internal/errors"
	"io/fs"
)

//go:embed templates static
var Files embed.FS

// Static returns the static assets rooted at the static directory.
func Static() (fs.FS, error) {
	static, err := fs.Sub(Files, "static")
	if err != nil {
		return nil, errors.Wrap(err, "sub static")
	}
	return static, nil
}
