package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strada-dev/strada/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┌┬┐┬─┐┌─┐┌┬┐┌─┐
  ╚═╗ │ ├┬┘├─┤ ││├─┤
  ╚═╝ ┴ ┴└─┴ ┴─┴┘┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "strada",
		Short: "Typed-route HTTP server",
		Long: `Strada serves HTTP routes declared in strada.json.

Routes use typed placeholder patterns, matched by a
prefix-compressed tree:

  • %s  path segment        %i  signed integer
  • %u  unsigned integer    %f  floating point
  • %b  boolean             %c  single character
  • %O  GUID in hyphenated, bare-hex, or compact form

Each listener owns its own route table, so the listening
port alone decides which routes a request can reach.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var serr *errors.StradaError
		if stderrors.As(err, &serr) {
			fmt.Fprint(os.Stderr, serr.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// printBanner prints the Strada ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
