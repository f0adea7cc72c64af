package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"glacier/internal/config"
	"glacier/internal/extract"
	"glacier/internal/inputs"
	"glacier/internal/pipeline"
	"glacier/internal/prompt"
	"glacier/internal/tokens"
)

// runFlags holds the flag values shared by the guess and cost commands.
type runFlags struct {
	configPath  string
	tech        string
	urls        string
	urlsHTML    string
	wordlist    string
	keyFile     string
	output      string
	numResults  int
	maxTokens   int
	model       string
	provider    string
	baseURL     string
	format      string
	pricing     string
	rateLimit   float64
	concurrency int
	timeoutSecs int
	verbose     bool
}

// register wires the shared flags onto a command.
func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config.json (values can be overridden by other flags)")
	cmd.Flags().StringVarP(&f.tech, "tech", "t", "", "Describe the tech stack of the application")
	cmd.Flags().StringVarP(&f.urls, "urls", "u", "", "Path to a file containing known URLs (one per line)")
	cmd.Flags().StringVar(&f.urlsHTML, "urls-html", "", "Path to a saved HTML page to harvest known URLs from")
	cmd.Flags().StringVarP(&f.wordlist, "wordlist", "w", "", "Path to a file containing relative URLs to exclude from output")
	cmd.Flags().StringVarP(&f.keyFile, "key-file", "k", "", "Path to a file containing the API key (defaults to the provider's env var)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "File path to write the results (default: stdout)")
	cmd.Flags().IntVarP(&f.numResults, "num-results", "n", 0, "Number of results to request (default: 10)")
	cmd.Flags().IntVarP(&f.maxTokens, "max-tokens", "T", 0, "Maximum tokens per query (default: 4000)")
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "Model identifier (default: gpt-4)")
	cmd.Flags().StringVar(&f.provider, "provider", "", "Model provider: openai or gemini (default: openai)")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "API-compatible proxy endpoint (OpenAI only)")
	cmd.Flags().StringVar(&f.format, "format", "", "Reply extraction strategy: lines, markdown, or json (default: lines)")
	cmd.Flags().StringVar(&f.pricing, "pricing", "", "Path to a YAML token rate table")
	cmd.Flags().Float64Var(&f.rateLimit, "rate-limit", 0, "Maximum model queries per second (default: unlimited)")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "Maximum concurrent model queries (default: 10)")
	cmd.Flags().IntVar(&f.timeoutSecs, "timeout", 0, "Per-query timeout in seconds (default: 120)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed progress information")
}

// resolveConfig loads the optional config file, applies explicitly set flags
// on top, merges defaults, and validates the outcome.
func (f *runFlags) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("tech") {
		cfg.Tech = f.tech
	}
	if flags.Changed("urls") {
		cfg.URLs = f.urls
	}
	if flags.Changed("urls-html") {
		cfg.URLsHTML = f.urlsHTML
	}
	if flags.Changed("wordlist") {
		cfg.Wordlist = f.wordlist
	}
	if flags.Changed("key-file") {
		cfg.KeyFile = f.keyFile
	}
	if flags.Changed("output") {
		cfg.Output = f.output
	}
	if flags.Changed("num-results") {
		cfg.NumResults = f.numResults
	}
	if flags.Changed("max-tokens") {
		cfg.MaxTokens = f.maxTokens
	}
	if flags.Changed("model") {
		cfg.Model = f.model
	}
	if flags.Changed("provider") {
		cfg.Provider = f.provider
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if flags.Changed("format") {
		cfg.Format = f.format
	}
	if flags.Changed("pricing") {
		cfg.Pricing = f.pricing
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit = f.rateLimit
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSecs = f.timeoutSecs
	}
	if flags.Changed("verbose") {
		cfg.Verbose = f.verbose
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	if cfg.Tech == "" && cfg.URLs == "" && cfg.URLsHTML == "" {
		return config.Config{}, fmt.Errorf("nothing to analyze: provide --tech, --urls, or --urls-html")
	}

	return cfg, nil
}

// buildOptions turns the resolved configuration into pipeline options,
// reading the input files. The gateway is attached by the caller; the cost
// command never attaches one.
func buildOptions(cfg config.Config) (pipeline.Options, error) {
	var known []string
	if cfg.URLs != "" {
		lines, err := inputs.ReadLines(cfg.URLs)
		if err != nil {
			return pipeline.Options{}, err
		}
		known = append(known, lines...)
	}
	if cfg.URLsHTML != "" {
		harvested, err := inputs.HarvestHTMLFile(cfg.URLsHTML)
		if err != nil {
			return pipeline.Options{}, err
		}
		known = append(known, harvested...)
		if cfg.Verbose {
			printInfo("harvested %d URL(s) from %s", len(harvested), cfg.URLsHTML)
		}
	}

	var exclusions []string
	if cfg.Wordlist != "" {
		lines, err := inputs.ReadLines(cfg.Wordlist)
		if err != nil {
			return pipeline.Options{}, err
		}
		exclusions = lines
	}

	strategy, err := extract.ForName(cfg.Format)
	if err != nil {
		return pipeline.Options{}, err
	}

	pricing := tokens.DefaultPricing()
	if cfg.Pricing != "" {
		pricing, err = tokens.LoadPricing(cfg.Pricing)
		if err != nil {
			return pipeline.Options{}, err
		}
	}

	return pipeline.Options{
		Tech:       cfg.Tech,
		KnownURLs:  known,
		Exclusions: exclusions,
		Params: prompt.Params{
			NumResults: cfg.NumResults,
			MaxTokens:  cfg.MaxTokens,
			Model:      cfg.Model,
		},
		Strategy:    strategy,
		Pricing:     pricing,
		RateLimit:   cfg.RateLimit,
		Concurrency: cfg.Concurrency,
		Timeout:     time.Duration(cfg.TimeoutSecs) * time.Second,
	}, nil
}
