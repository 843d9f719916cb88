// Command idfreader loads a parsed building energy model and answers
// area, schedule, and consumption queries over it.
package main

import (
	"os"

	"github.com/danielpiro/idf-reader/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
