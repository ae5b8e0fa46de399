package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/cobra"

	"github.com/thirteen37/typedconf/internal/document"
)

var getCmd = &cobra.Command{
	Use:   "get <file> <path>",
	Short: "Print the value at a dotted path",
	Long: `Get prints the value found at a dotted path in a configuration file.
Scalars are printed verbatim; maps and arrays are printed as indented JSON.

Example:
  typedconf get config.toml server.port
  typedconf get config.yaml server`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}

	value, ok := doc.Get(args[1])
	if !ok {
		return fmt.Errorf("path %q not found in %s", args[1], args[0])
	}

	switch v := value.(type) {
	case nil:
		fmt.Println("null")
	case string:
		fmt.Println(v)
	case *orderedmap.OrderedMap, orderedmap.OrderedMap, map[string]any, []any:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render value: %w", err)
		}
		fmt.Println(string(data))
	default:
		fmt.Println(v)
	}
	return nil
}
