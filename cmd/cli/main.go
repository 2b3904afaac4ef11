package main

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/myrjola/constellation/cmd/cli/inspect"
	"github.com/myrjola/constellation/cmd/cli/render"
	"github.com/myrjola/constellation/internal/errors"
	"github.com/spf13/cobra"
	"os"
)

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.PersistentFlags().String("content", "ui/static/data/content.json",
		"content document, a file path or an http(s) URL")
	rootCmd.AddGroup(render.Group)
	rootCmd.AddCommand(render.Page)
	rootCmd.AddGroup(inspect.Group)
	rootCmd.AddCommand(inspect.Content)
	rootCmd.AddCommand(inspect.VideoID)
}

var rootCmd = &cobra.Command{
	Use:           "constellation-cli",
	Long:          `Command line utilities for the constellation greeting page`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
