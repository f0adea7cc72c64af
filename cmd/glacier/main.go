// Package main provides the glacier CLI: LLM-assisted guessing of likely but
// undocumented HTTP endpoints. The tool only proposes candidate URLs; it
// never probes the target.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const banner = `
       /\
      /  \          glacier
     /    \/\       endpoint guessing for content discovery
    /        \
   /__________\
`

var (
	successColor = color.New(color.FgGreen).SprintFunc()
	infoColor    = color.New(color.FgCyan).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:   "glacier",
	Short: "LLM-assisted HTTP endpoint guessing",
	Long: banner + `
Glacier asks a hosted language model to propose likely but undocumented
endpoints of a target web application, based on its tech stack and already
known URLs, then filters and prints the candidates for other tools to verify.`,
}

func printInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", infoColor("INFO"), fmt.Sprintf(format, args...))
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
