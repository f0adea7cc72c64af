package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"glacier/internal/tech"
)

var (
	techsDescribe string
	techsFromFile string
)

var techsCommand = &cobra.Command{
	Use:   "techs",
	Short: "Canonicalize a tech description against the fingerprint catalog",
	Long: `Matches a free-text tech description against the Wappalyzer fingerprint
catalog, or fingerprints a locally saved response body. Everything runs
offline; the target is never contacted. The canonical names make better
--tech input for a guess run.`,
	RunE: runTechs,
}

func init() {
	techsCommand.Flags().StringVarP(&techsDescribe, "describe", "d", "", "Free-text tech description to canonicalize")
	techsCommand.Flags().StringVarP(&techsFromFile, "from-file", "f", "", "Path to a saved response body to fingerprint")
	rootCmd.AddCommand(techsCommand)
}

func runTechs(cmd *cobra.Command, _ []string) error {
	if techsDescribe == "" && techsFromFile == "" {
		return fmt.Errorf("provide --describe or --from-file")
	}

	catalog, err := tech.NewCatalog()
	if err != nil {
		return err
	}

	var names []string
	switch {
	case techsDescribe != "":
		names = catalog.Canonicalize(techsDescribe)
	default:
		body, err := os.ReadFile(techsFromFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", techsFromFile, err)
		}
		names = catalog.FingerprintResponse(http.Header{}, body)
	}

	if len(names) == 0 {
		printInfo("no known technologies recognized")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
	return nil
}
