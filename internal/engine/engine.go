// Package engine bridges the web layer to the external finance engine
// binary: it stages the uploaded dataset, invokes the engine with the
// dataset path and category, classifies the exit code and decodes the
// printed metrics.
package engine

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// Analyzer runs one analysis request end to end. Exactly one of result
// or error comes back per call.
type Analyzer struct {
	stager  Stager
	invoker Invoker
	timeout time.Duration
}

func NewAnalyzer(binary, stagingDir string, timeout time.Duration) *Analyzer {
	return &Analyzer{
		stager:  Stager{Dir: stagingDir},
		invoker: Invoker{Binary: binary},
		timeout: timeout,
	}
}

// Analyze stages the dataset under a request-scoped id, runs the engine
// on it and returns the decoded metrics. Exit codes 1/2/3 and timeouts
// come back as *Error; staging and launch failures come back as plain
// wrapped errors. A clean exit with malformed stdout degrades to the
// fallback record instead of failing the request.
func (a *Analyzer) Analyze(ctx context.Context, category string, dataset io.Reader) (Result, error) {
	id := uuid.NewString()
	log := slog.With("component", "engine", "request_id", id, "category", category)

	filePath, err := a.stager.Stage(id, dataset)
	if err != nil {
		return Result{}, err
	}
	defer os.Remove(filePath)

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	outcome, err := a.invoker.Invoke(ctx, filePath, category)
	if err != nil {
		return Result{}, err
	}

	if bridgeErr := Classify(outcome.ExitCode, outcome.Stderr); bridgeErr != nil {
		log.Info("Engine signaled failure", "exit_code", outcome.ExitCode, "kind", string(bridgeErr.Kind))
		return Result{}, bridgeErr
	}

	result, ok := Decode(outcome.Stdout)
	if !ok {
		// Fail-soft: the caller gets the neutral record, operators get a
		// WARN they can alert on.
		log.Warn("Engine output malformed, returning fallback result", "stdout", outcome.Stdout)
		return result, nil
	}

	log.Info("Analysis complete", "investment_type", result.InvestmentType)

	return result, nil
}
