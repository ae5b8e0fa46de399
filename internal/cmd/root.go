// Package cmd provides the CLI commands for typedconf.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thirteen37/typedconf"

	// Register every backend the tool can read and write.
	_ "github.com/thirteen37/typedconf/format/ini"
	_ "github.com/thirteen37/typedconf/format/json"
	_ "github.com/thirteen37/typedconf/format/json5"
	_ "github.com/thirteen37/typedconf/format/toml"
	_ "github.com/thirteen37/typedconf/format/yaml"
)

var log = logrus.New()

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "typedconf",
	Short: "Inspect, convert and edit configuration files",
	Long: `typedconf works with configuration files in any registered format
(json, json5, toml, yaml, ini), selected by file extension.

It converts files between formats, reads and edits values by dotted path,
rewrites files in canonical form, and merges them.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(mergeCmd)
}

// applyStyle overrides a settings bundle's style from command flags.
func applyStyle(s *typedconf.Settings, compact bool, indent string) {
	if compact {
		s.Style.Pretty = false
	}
	if indent != "" {
		s.Style.Indent = indent
	}
}
