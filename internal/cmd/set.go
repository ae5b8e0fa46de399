package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thirteen37/typedconf/internal/document"
)

var setCmd = &cobra.Command{
	Use:   "set <file> <path> <value>",
	Short: "Set the value at a dotted path",
	Long: `Set writes a value at a dotted path in a configuration file and saves
the file in place. The value is parsed as a JSON literal (number, boolean,
null, quoted string, array or object); anything that does not parse is
taken as a plain string. Missing intermediate maps are created.

Example:
  typedconf set config.toml server.port 9090
  typedconf set config.yaml server.host 10.0.0.1
  typedconf set config.json tags '["a", "b"]'`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}

	value := parseValue(args[2])
	if err := doc.Set(args[1], value); err != nil {
		return fmt.Errorf("failed to set %q: %w", args[1], err)
	}

	if err := doc.Save(); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file": args[0],
		"path": args[1],
	}).Debug("updated value")
	return nil
}

// parseValue interprets raw as a JSON literal, falling back to the raw string.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}
