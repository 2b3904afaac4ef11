// Package render writes the hydrated page as a static HTML file.
package render

import (
	"github.com/myrjola/constellation/internal/content"
	"github.com/myrjola/constellation/internal/errors"
	"github.com/myrjola/constellation/internal/hydrate"
	"github.com/myrjola/constellation/internal/interaction"
	"github.com/myrjola/constellation/ui"
	"github.com/spf13/cobra"
	"io"
	"log/slog"
	"os"
)

var Group = &cobra.Group{
	ID:    "page",
	Title: "Page operations",
}

func init() {
	Page.Flags().String("out", "-", "path to the rendered HTML file, - for stdout")
}

var Page = &cobra.Command{
	Use:     "render",
	GroupID: "page",
	Short:   "Render the page",
	Long: `Renders the page shell hydrated with the content document in its initial state: no memory open, ` +
		`playlist collapsed and every quiz answer hidden.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		source, err := cmd.Flags().GetString("content")
		if err != nil {
			return errors.Wrap(err, "content flag")
		}
		outPath, err := cmd.Flags().GetString("out")
		if err != nil {
			return errors.Wrap(err, "out flag")
		}
		doc, err := content.NewLoader(nil).Load(cmd.Context(), source)
		if err != nil {
			return errors.Wrap(err, "load content", slog.String("source", source))
		}

		if outPath == "-" {
			return Write(cmd.OutOrStdout(), doc)
		}
		file, err := os.Create(outPath)
		if err != nil {
			return errors.Wrap(err, "create file", slog.String("path", outPath))
		}
		if err = Write(file, doc); err != nil {
			return errors.Join(err, file.Close())
		}
		if err = file.Close(); err != nil {
			return errors.Wrap(err, "close file")
		}
		cmd.Printf("The page was saved as %s\n", outPath)
		return nil
	},
}

// Write renders the page hydrated with doc to w.
func Write(w io.Writer, doc *content.Document) error {
	shell, err := ui.ParseShell()
	if err != nil {
		return errors.Wrap(err, "parse shell")
	}
	p, err := shell.Page("", "")
	if err != nil {
		return errors.Wrap(err, "shell page")
	}
	if err = p.Apply(hydrate.Page(doc, interaction.View{}, hydrate.DefaultsFrom(p))...); err != nil {
		return errors.Wrap(err, "hydrate")
	}
	if err = p.Render(w); err != nil {
		return errors.Wrap(err, "render")
	}
	return nil
}
