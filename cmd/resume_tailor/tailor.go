package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/rendering"
	"github.com/jonathan/resume-tailor/internal/resumes"
	"github.com/jonathan/resume-tailor/internal/styling"
	"github.com/jonathan/resume-tailor/internal/types"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a resume to one or more job descriptions",
	Long: `Extracts skills, experience and education requirements from a job description,
reorders the resume by relevance, trims it to a page budget and exports it.

Repeat --job to tailor the same resume to several postings in parallel; each
output file is numbered. Configuration can be loaded from a JSON file using
--config. Command-line arguments override config file values.`,
	RunE: runTailor,
}

var (
	tailorConfigPath   string
	tailorResume       string
	tailorJobs         []string
	tailorJobURL       string
	tailorOutput       string
	tailorFormat       string
	tailorPageMode     string
	tailorStyle        string
	tailorTheme        string
	tailorTokenizer    string
	tailorVocabulary   string
	tailorTemplate     string
	tailorAPIKey       string
	tailorUseBrowser   bool
	tailorVerbose      bool
	tailorOmitAnalysis bool
)

func init() {
	tailorCmd.Flags().StringVar(&tailorConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	tailorCmd.Flags().StringVarP(&tailorResume, "resume", "r", "", "Path to the JSON resume (default resume_data.json)")
	tailorCmd.Flags().StringArrayVarP(&tailorJobs, "job", "j", nil, "Path to a job description file (repeatable, mutually exclusive with --job-url)")
	tailorCmd.Flags().StringVar(&tailorJobURL, "job-url", "", "URL to fetch the job description from (mutually exclusive with --job)")
	tailorCmd.Flags().StringVarP(&tailorOutput, "output", "o", "", "Output file name (default tailored_resume_<timestamp>.<ext>)")
	tailorCmd.Flags().StringVarP(&tailorFormat, "format", "f", "", "Output format: markdown, json, html or latex")
	tailorCmd.Flags().StringVar(&tailorPageMode, "page-mode", "", "Page mode: auto, single-page or multi-page")
	tailorCmd.Flags().StringVar(&tailorStyle, "style", "", "Theme selection: none, rules or llm")
	tailorCmd.Flags().StringVar(&tailorTheme, "theme", "", "Theme name, overriding --style")
	tailorCmd.Flags().StringVar(&tailorTokenizer, "tokenizer", "", "Tokenizer: treebank or whitespace")
	tailorCmd.Flags().StringVar(&tailorVocabulary, "vocabulary", "", "Path to a YAML skill vocabulary")
	tailorCmd.Flags().StringVarP(&tailorTemplate, "template", "t", "", "Path to a LaTeX template replacing the built-in layout")
	tailorCmd.Flags().BoolVar(&tailorUseBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
	tailorCmd.Flags().BoolVarP(&tailorVerbose, "verbose", "v", false, "Print detailed debug information")
	tailorCmd.Flags().BoolVar(&tailorOmitAnalysis, "omit-analysis", false, "Leave the job match analysis out of Markdown output")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	tailorCmd.Flags().StringVar(&tailorAPIKey, "api-key", "", "Gemini API Key for --style llm (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(tailorCmd)
}

// resolveTailorConfig merges the config file, changed flags and defaults.
func resolveTailorConfig(cmd *cobra.Command, stdout io.Writer) (config.Config, error) {
	var cfg config.Config
	if tailorConfigPath != "" {
		loaded, err := config.LoadConfig(tailorConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if tailorVerbose {
			fmt.Fprintf(stdout, "Loaded config from: %s\n", tailorConfigPath)
		}
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	set("resume", &cfg.Resume, tailorResume)
	set("job-url", &cfg.JobURL, tailorJobURL)
	set("output", &cfg.Output, tailorOutput)
	set("format", &cfg.Format, tailorFormat)
	set("page-mode", &cfg.PageMode, tailorPageMode)
	set("style", &cfg.Style, tailorStyle)
	set("tokenizer", &cfg.Tokenizer, tailorTokenizer)
	set("vocabulary", &cfg.Vocabulary, tailorVocabulary)
	set("template", &cfg.Template, tailorTemplate)
	set("api-key", &cfg.APIKey, tailorAPIKey)
	if flags.Changed("job") && len(tailorJobs) > 0 {
		cfg.Job = tailorJobs[0]
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = tailorUseBrowser
	}
	if flags.Changed("verbose") {
		cfg.Verbose = tailorVerbose
	}
	if flags.Changed("omit-analysis") {
		cfg.OmitAnalysis = tailorOmitAnalysis
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if cfg.Job == "" && cfg.JobURL == "" {
		return cfg, fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runTailor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := resolveTailorConfig(cmd, stdout)
	if err != nil {
		return err
	}

	jobPaths := []string{cfg.Job}
	if cmd.Flags().Changed("job") {
		jobPaths = tailorJobs
	}
	if cfg.JobURL != "" {
		jobPaths = []string{""}
	}
	jobs := make([]string, 0, len(jobPaths))
	for _, path := range jobPaths {
		text, err := readJob(ctx, path, cfg.JobURL, cfg.UseBrowser, cfg.Verbose)
		if err != nil {
			return err
		}
		jobs = append(jobs, text)
	}

	resume, origin, err := resumes.LoadOrCreate(cfg.Resume)
	if err != nil {
		return err
	}
	switch origin {
	case resumes.CreatedExample:
		fmt.Fprintf(stdout, "Resume file %s not found. Created example template.\n", cfg.Resume)
	case resumes.FallbackExample:
		fmt.Fprintf(stderr, "Warning: error parsing %s. Using example template; the file was left unchanged.\n", cfg.Resume)
	}

	vocab, err := loadVocabulary(cfg.Vocabulary)
	if err != nil {
		return err
	}
	format, err := rendering.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	mode, err := pipeline.ParsePageMode(cfg.PageMode)
	if err != nil {
		return err
	}

	classifier, closeClassifier, err := newStyleClassifier(ctx, cfg, vocab, stderr)
	if err != nil {
		return err
	}
	defer closeClassifier()

	opts := pipeline.Options{
		PageMode:   mode,
		Tokenizer:  analysis.Strategy(cfg.Tokenizer),
		Vocabulary: vocab,
		Verbose:    cfg.Verbose,
		Out:        stdout,
	}

	var results []*pipeline.Result
	if len(jobs) == 1 {
		opts.Resume = resume
		opts.JobText = jobs[0]
		result, err := pipeline.Tailor(ctx, opts)
		if err != nil {
			return err
		}
		results = []*pipeline.Result{result}
	} else {
		tok, _ := analysis.NewTokenizer(opts.Tokenizer)
		cached, err := analysis.NewCachedExtractor(analysis.NewExtractor(vocab, tok), cfg.CacheSize)
		if err != nil {
			return err
		}
		opts.Extractor = cached
		opts.Verbose = false
		results, err = pipeline.TailorBatch(ctx, resume, jobs, opts)
		if err != nil {
			return err
		}
	}

	now := time.Now()
	for i, result := range results {
		path := outputPath(cfg.Output, format, now)
		if len(results) > 1 {
			path = batchOutputPath(cfg.Output, format, now, i)
		}
		if err := exportResult(ctx, result, classifier, format, cfg, path, stdout, stderr); err != nil {
			return err
		}
	}
	return nil
}

// exportResult themes, renders and writes one tailoring result.
func exportResult(ctx context.Context, result *pipeline.Result, classifier styling.Classifier, format rendering.Format,
	cfg config.Config, path string, stdout, stderr io.Writer) error {
	theme, err := classifier.Classify(ctx, result.Signals)
	if err != nil {
		return fmt.Errorf("failed to choose theme: %w", err)
	}

	rendered, err := rendering.Render(result.Resume, format, rendering.Options{
		Theme:           theme,
		ExperienceYears: result.ExperienceYears,
		EducationFit:    result.Education,
		OmitAnalysis:    cfg.OmitAnalysis,
		LaTeXTemplate:   cfg.Template,
	})
	if err != nil {
		return err
	}

	if err := writeFile(path, rendered); err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(stderr, "Warning: %s\n", w)
	}
	fmt.Fprintf(stdout, "Resume exported to %s\n", path)
	if cfg.Verbose {
		printSummary(stdout, result.Signals, result.ExperienceYears, theme)
	}
	return nil
}

func printSummary(out io.Writer, signals *types.JobSignals, years float64, theme styling.Theme) {
	fmt.Fprintf(out, "[VERBOSE] Skills detected: %d\n", len(signals.Skills))
	fmt.Fprintf(out, "[VERBOSE] Experience listed: %.1f years\n", years)
	fmt.Fprintf(out, "[VERBOSE] Theme: %s\n", theme.Name)
}

// newStyleClassifier picks the theme classifier for the run. An explicit
// --theme wins. The llm style needs an API key and falls back to rules
// without one.
func newStyleClassifier(ctx context.Context, cfg config.Config, vocab *analysis.Vocabulary, stderr io.Writer) (styling.Classifier, func(), error) {
	noop := func() {}

	if tailorTheme != "" {
		theme, err := styling.Lookup(tailorTheme)
		if err != nil {
			return nil, noop, err
		}
		return styling.StaticClassifier{Theme: theme}, noop, nil
	}

	switch styling.Mode(cfg.Style) {
	case styling.ModeRules:
		return styling.NewRuleClassifier(vocab), noop, nil
	case styling.ModeLLM:
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv(llm.EnvAPIKey)
		}
		if apiKey == "" {
			fmt.Fprintf(stderr, "Warning: --style llm needs %s or --api-key; using rule-based styling\n", llm.EnvAPIKey)
			return styling.NewRuleClassifier(vocab), noop, nil
		}
		client, err := llm.NewClient(ctx, llm.ConfigFromEnv(), apiKey)
		if err != nil {
			fmt.Fprintf(stderr, "Warning: model client unavailable (%v); using rule-based styling\n", err)
			return styling.NewRuleClassifier(vocab), noop, nil
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				fmt.Fprintf(stderr, "Warning: failed to close model client: %v\n", err)
			}
		}
		return styling.NewLLMClassifier(client, styling.NewRuleClassifier(vocab)), closeFn, nil
	default:
		classifier, err := styling.NewClassifier(styling.Mode(cfg.Style), nil)
		return classifier, noop, err
	}
}
