package main

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"glacier/internal/config"
	"glacier/internal/gateway"
	"glacier/internal/output"
	"glacier/internal/pipeline"
)

var guessFlags runFlags

var guessCommand = &cobra.Command{
	Use:   "guess",
	Short: "Query the model for likely undocumented endpoints",
	Long: `Builds a content-discovery prompt from the tech description, known URLs,
and exclusion wordlist, queries the configured model provider, and prints the
deduplicated, filtered candidate URLs one per line.`,
	RunE: runGuess,
}

func init() {
	guessFlags.register(guessCommand)
	rootCmd.AddCommand(guessCommand)
}

func runGuess(cmd *cobra.Command, _ []string) error {
	cfg, err := guessFlags.resolveConfig(cmd)
	if err != nil {
		return err
	}

	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	gw, err := newGateway(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = gw.Close() }()
	opts.Gateway = gw

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("querying model"),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	opts.OnProgress = func(stage, message string) {
		if stage == "query" {
			_ = bar.Add(1)
		}
		if cfg.Verbose {
			printInfo("%s: %s", stage, message)
		}
	}

	result, err := pipeline.New(opts).Run(ctx)
	_ = bar.Finish()
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printInfo("run %s: %d batch(es), ~%d tokens, ~$%.4f",
			result.RunID, result.Batches, result.Estimate.TotalTokens, result.Estimate.USD)
	}

	dest := output.ResultPath(cfg.Output, result.RunID)
	if err := output.WriteFile(dest, result.URLs); err != nil {
		return err
	}
	if dest != "" && dest != "-" {
		printInfo("%s %d candidate URL(s) written to %s", successColor("Done."), len(result.URLs), dest)
	}
	return nil
}

// newGateway constructs the provider gateway for the resolved configuration.
func newGateway(ctx context.Context, cfg config.Config) (gateway.Gateway, error) {
	switch cfg.Provider {
	case "gemini":
		creds := gateway.ResolveCredential(cfg.KeyFile, "GEMINI_API_KEY")
		return gateway.NewGeminiGateway(ctx, creds)
	case "openai":
		creds := gateway.ResolveCredential(cfg.KeyFile, "OPENAI_API_KEY")
		return gateway.NewOpenAIGateway(creds, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
