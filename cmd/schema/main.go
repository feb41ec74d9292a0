// schema writes json schema of sitefeed config, used by config verification on load
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/umputun/sitefeed/pkg/config"
)

type options struct {
	Output string `short:"o" long:"output" default:"pkg/config/schema.json" description:"schema output file"`
	Stdout bool   `long:"stdout" description:"print schema instead of writing the file"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	data, err := json.MarshalIndent(config.GenerateSchema(), "", "  ")
	if err != nil {
		log.Fatalf("[ERROR] failed to marshal config schema: %v", err)
	}
	data = append(data, '\n')

	if opts.Stdout {
		_, _ = os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(opts.Output, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		log.Fatalf("[ERROR] failed to write %s: %v", opts.Output, err)
	}
	fmt.Printf("config schema written to %s\n", opts.Output)
}
