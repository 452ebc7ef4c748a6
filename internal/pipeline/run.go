// Package pipeline provides the high-level orchestration for tailoring a resume to a job description.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/ranking"
	"github.com/jonathan/resume-tailor/internal/selection"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Step names reported through ProgressEvent
const (
	StepAnalyze    = "analyze"
	StepRank       = "rank"
	StepOptimize   = "optimize"
	StepExperience = "experience"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for a tailoring run
type Options struct {
	Resume   *types.Resume
	JobText  string
	PageMode PageMode

	// Tokenizer and Vocabulary are used when Extractor is nil
	Tokenizer  analysis.Strategy
	Vocabulary *analysis.Vocabulary

	// Extractor and Ranker override the components built from Tokenizer and
	// Vocabulary, e.g. to share a cached extractor across runs
	Extractor analysis.SignalExtractor
	Ranker    *ranking.Ranker

	Verbose    bool
	Out        io.Writer // verbose output; defaults to os.Stdout
	Now        func() time.Time
	OnProgress ProgressCallback
}

// Result is the outcome of one tailoring run
type Result struct {
	RunID           string                `json:"run_id"`
	Resume          *types.Resume         `json:"resume"`
	Signals         *types.JobSignals     `json:"signals"`
	Ranking         *ranking.Ranking      `json:"-"`
	Optimization    *selection.Report     `json:"optimization,omitempty"`
	Education       *ranking.EducationFit `json:"education"`
	ExperienceYears float64               `json:"experience_years"`
	DateErrors      []*types.DateError    `json:"-"`
	Warnings        []string              `json:"warnings,omitempty"`
}

// Tailor runs extract → rank → optimize on a deep copy of opts.Resume. The
// caller's resume is never modified. Malformed work dates are reported in
// the result and never fail the run. ctx is checked before each step, so a
// cancelled or expired context stops the run at the next step boundary.
func Tailor(ctx context.Context, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Resume == nil {
		return nil, fmt.Errorf("resume is required")
	}

	mode := opts.PageMode
	if mode == "" {
		mode = PageModeAuto
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid page mode %q (expected one of: %s)", mode, pageModeList())
	}

	extractor, ranker := opts.components()
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	var printer *observability.Printer
	if opts.Verbose {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		printer = observability.NewPrinter(out)
	}

	result := &Result{RunID: uuid.New().String()}

	signals := extractor.Extract(opts.JobText)
	result.Signals = signals
	if printer != nil {
		printer.PrintJobSignals(signals)
	}
	opts.emit(StepAnalyze, result.RunID, fmt.Sprintf("Detected %d skills", len(signals.Skills)), signals)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranked := ranker.RankWithScores(opts.Resume, signals)
	result.Ranking = ranked
	result.Resume = ranked.Resume
	if printer != nil {
		printer.PrintRankedResume(ranked)
	}
	opts.emit(StepRank, result.RunID, "Ranked work, projects and skills", nil)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if mode.Optimizes() {
		optimized, report := selection.Optimize(ranked.Resume, signals)
		result.Resume = optimized
		result.Optimization = report
		if printer != nil {
			printer.PrintOptimization(report)
		}
		opts.emit(StepOptimize, result.RunID, fmt.Sprintf("Applied %s tier", report.Tier.Name), report)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Education = ranking.AssessEducation(result.Resume.Education, signals)
	result.ExperienceYears, result.DateErrors = types.TotalExperience(result.Resume, now())
	for _, e := range result.DateErrors {
		result.Warnings = append(result.Warnings, e.Error())
	}
	if printer != nil {
		printer.PrintEducationFit(result.Education)
		printer.PrintDateErrors(result.DateErrors)
	}
	opts.emit(StepExperience, result.RunID, fmt.Sprintf("%.1f years of experience", result.ExperienceYears), nil)

	return result, nil
}

// TailorBatch tailors one resume against several job descriptions in
// parallel. Results are returned in the order of jobs; each run works on its
// own copy of the resume. The extractor and ranker are built once and shared.
func TailorBatch(ctx context.Context, resume *types.Resume, jobs []string, opts Options) ([]*Result, error) {
	if opts.Extractor == nil || opts.Ranker == nil {
		extractor, ranker := opts.components()
		opts.Extractor = extractor
		opts.Ranker = ranker
	}

	results := make([]*Result, len(jobs))
	g, gCtx := errgroup.WithContext(ctx)

	for i, job := range jobs {
		runOpts := opts
		runOpts.Resume = resume
		runOpts.JobText = job
		g.Go(func() error {
			result, err := Tailor(gCtx, runOpts)
			if err != nil {
				return fmt.Errorf("job %d: %w", i+1, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// components resolves the extractor and ranker for a run
func (o *Options) components() (analysis.SignalExtractor, *ranking.Ranker) {
	extractor := o.Extractor
	ranker := o.Ranker
	if extractor != nil && ranker != nil {
		return extractor, ranker
	}

	tok, _ := analysis.NewTokenizer(o.Tokenizer)
	if extractor == nil {
		extractor = analysis.NewExtractor(o.Vocabulary, tok)
	}
	if ranker == nil {
		ranker = ranking.NewRanker(ranking.NewScorer(tok))
	}
	return extractor, ranker
}

// emit calls the progress callback if configured
func (o *Options) emit(step, runID, message string, content any) {
	if o.OnProgress != nil {
		o.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID,
			Content: content,
		})
	}
}
