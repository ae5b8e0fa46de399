package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thirteen37/typedconf"
	"github.com/thirteen37/typedconf/internal/document"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <base> <overlay>",
	Short: "Merge two configuration files",
	Long: `Merge layers the overlay file onto the base file: maps merge
recursively, and overlay values win on conflict. The base and overlay may
be in different formats.

The result is written to the --output path in the format its extension
names, or to stdout in the base file's format.

Example:
  typedconf merge defaults.toml local.toml
  typedconf merge defaults.json overrides.yaml -o merged.json`,
	Args: cobra.ExactArgs(2),
	RunE: runMerge,
}

var mergeOutput string

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Write the result to this file instead of stdout")
}

func runMerge(cmd *cobra.Command, args []string) error {
	base, err := document.Load(args[0])
	if err != nil {
		return err
	}
	overlay, err := document.Load(args[1])
	if err != nil {
		return err
	}

	merged := document.Merge(base.Tree, overlay.Tree)

	if mergeOutput == "" {
		output, err := document.Encode(merged, base.Settings)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"format": base.Settings.Backend.Name(),
			"bytes":  len(output),
		}).Debug("merged to stdout")
		fmt.Print(string(output))
		return nil
	}

	s, err := typedconf.DefaultSettings(mergeOutput)
	if err != nil {
		return err
	}
	result := &document.Document{Tree: merged, Settings: s}
	return result.Save()
}
