package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/nuclea/site"
)

var validateCmd = &cobra.Command{
	Use:   "validate [content-file]",
	Short: "Check a content file",
	Long:  "Parses a YAML or TOML content file and reports every validation problem. Without an argument the embedded default content is checked.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	var (
		c   *site.Content
		err error
	)
	name := "embedded content"
	if len(args) == 1 {
		name = args[0]
		c, err = site.Load(args[0])
	} else {
		c, err = site.DefaultContent()
	}
	if err != nil {
		for _, e := range problems(err) {
			fmt.Fprintf(out, "✗ %v\n", e)
		}
		return fmt.Errorf("%s is invalid", name)
	}
	fmt.Fprintf(out, "✓ %s: %q, sections %s\n", name, c.Brand, strings.Join(c.Anchors(), ", "))
	return nil
}

// problems flattens joined errors, wrapped or not, so each one prints on its
// own line.
func problems(err error) []error {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return []error{err}
	}
	var out []error
	for _, e := range joined.Unwrap() {
		out = append(out, problems(e)...)
	}
	return out
}
