// Package inspect prints what the page would show for a content document.
package inspect

import (
	"fmt"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/myrjola/constellation/internal/content"
	"github.com/myrjola/constellation/internal/errors"
	"github.com/myrjola/constellation/internal/media"
	"github.com/spf13/cobra"
	"log/slog"
	"strconv"
)

var Group = &cobra.Group{
	ID:    "content",
	Title: "Content operations",
}

var Content = &cobra.Command{
	Use:     "inspect",
	GroupID: "content",
	Short:   "Inspect the content document",
	Long:    `Prints the memories and the playlist tracks of the content document as tables.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		source, err := cmd.Flags().GetString("content")
		if err != nil {
			return errors.Wrap(err, "content flag")
		}
		doc, err := content.NewLoader(nil).Load(cmd.Context(), source)
		if err != nil {
			return errors.Wrap(err, "load content", slog.String("source", source))
		}
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, MemoriesTable(doc.Memories))
		if doc.Hero != nil && doc.Hero.Playlist != nil {
			_, _ = fmt.Fprintln(out, TracksTable(doc.Hero.Playlist.Tracks))
		}
		return nil
	},
}

var VideoID = &cobra.Command{
	Use:     "video-id [url...]",
	GroupID: "content",
	Short:   "Extract video ids",
	Long:    `Prints the YouTube video id of every URL, or an empty line when the URL has none.`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, url := range args {
			id, _ := media.VideoID(url)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
		}
	},
}

type column struct {
	header string
	align  text.Align
}

func render(columns []column, rows []table.Row) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.header
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       c.align,
			AlignHeader: text.AlignLeft,
		}
	}
	tw.AppendHeader(header)
	tw.AppendRows(rows)
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

// MemoriesTable lists the memories in star order with the media each one shows.
func MemoriesTable(memories []content.Memory) string {
	rows := make([]table.Row, 0, len(memories))
	for i, m := range memories {
		rows = append(rows, table.Row{strconv.Itoa(i + 1), m.Type, m.Title, mediaOf(m)})
	}
	return render([]column{
		{header: "Star", align: text.AlignRight},
		{header: "Type", align: text.AlignLeft},
		{header: "Title", align: text.AlignLeft},
		{header: "Media", align: text.AlignLeft},
	}, rows)
}

func mediaOf(m content.Memory) string {
	switch {
	case m.Image != "":
		return fmt.Sprintf("image %s", m.Image)
	case m.Video != "":
		return fmt.Sprintf("video %s", m.Video)
	default:
		return "-"
	}
}

// TracksTable lists the playlist tracks and how each one is shown: embedded when a video id resolves, linked
// otherwise.
func TracksTable(tracks []content.Track) string {
	rows := make([]table.Row, 0, len(tracks))
	for _, t := range tracks {
		id, ok := media.VideoID(t.URL)
		shown := "link"
		if ok {
			shown = "embed"
		}
		rows = append(rows, table.Row{t.Label, shown, id, t.URL})
	}
	return render([]column{
		{header: "Track", align: text.AlignLeft},
		{header: "Shown as", align: text.AlignLeft},
		{header: "Video ID", align: text.AlignLeft},
		{header: "URL", align: text.AlignLeft},
	}, rows)
}
