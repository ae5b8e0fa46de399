// typedconf inspects, converts and edits configuration files.
package main

import "github.com/thirteen37/typedconf/internal/cmd"

func main() {
	cmd.Execute()
}
