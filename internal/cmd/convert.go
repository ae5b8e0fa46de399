package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thirteen37/typedconf"
	"github.com/thirteen37/typedconf/format"
	"github.com/thirteen37/typedconf/internal/document"
)

var convertCmd = &cobra.Command{
	Use:   "convert <source> <destination>",
	Short: "Convert a configuration file to another format",
	Long: `Convert reads the source file and rewrites it at the destination path,
inferring both formats from the file extensions. Key order is preserved
where the destination format allows it.

Example:
  typedconf convert config.json config.yaml
  typedconf convert config.toml config.conf --to json
  typedconf convert config.yaml config.json --compact`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

var (
	convertTo      string
	convertCompact bool
	convertIndent  string
)

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "", "Destination format extension (default: inferred from the destination path)")
	convertCmd.Flags().BoolVar(&convertCompact, "compact", false, "Emit compact output where the format supports it")
	convertCmd.Flags().StringVar(&convertIndent, "indent", "", "Indent unit for pretty output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]

	doc, err := document.Load(src)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file":   src,
		"format": doc.Settings.Backend.Name(),
	}).Debug("loaded source")

	var s typedconf.Settings
	if convertTo != "" {
		backend, ok := format.ByExtension(convertTo)
		if !ok {
			return fmt.Errorf("no backend registered for format %q", convertTo)
		}
		s, err = typedconf.ExplicitSettings(dst, backend, format.DefaultStyle())
	} else {
		s, err = typedconf.DefaultSettings(dst)
	}
	if err != nil {
		return err
	}
	applyStyle(&s, convertCompact, convertIndent)

	if err := doc.SaveAs(s); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file":   s.Path,
		"format": s.Backend.Name(),
	}).Debug("wrote destination")
	return nil
}
