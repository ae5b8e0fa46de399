package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thirteen37/typedconf/internal/document"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Rewrite a configuration file in canonical form",
	Long: `Fmt reparses a configuration file and writes it back in the canonical
style of its format, preserving key order. Use --compact or --indent to
override the default style.

Example:
  typedconf fmt config.json
  typedconf fmt config.json --indent "	"`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

var (
	fmtCompact bool
	fmtIndent  string
)

func init() {
	fmtCmd.Flags().BoolVar(&fmtCompact, "compact", false, "Emit compact output where the format supports it")
	fmtCmd.Flags().StringVar(&fmtIndent, "indent", "", "Indent unit for pretty output")
}

func runFmt(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}

	s := doc.Settings
	applyStyle(&s, fmtCompact, fmtIndent)
	return doc.SaveAs(s)
}
