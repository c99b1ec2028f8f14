package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestAnalyzer(t *testing.T, script string) (*Analyzer, string) {
	t.Helper()

	stagingDir := filepath.Join(t.TempDir(), "staging")

	return NewAnalyzer(writeFakeEngine(t, script), stagingDir, 10*time.Second), stagingDir
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name        string
		script      string
		category    string
		expected    Result
		expectedErr ErrorKind
	}{
		{
			name:     "successful analysis decodes engine output",
			script:   `printf 'EQUITY,0.052,87,-3,5'`,
			category: "EQUITY",
			expected: Result{
				InvestmentType: "EQUITY",
				Mean:           "0.052",
				Stability:      "87",
				WorstCaseMin:   "-3",
				WorstCaseMax:   "5",
			},
		},
		{
			name:        "unknown category short-circuits before decoding",
			script:      `printf 'should never be decoded'; exit 3`,
			category:    "PLUTONIUM",
			expectedErr: ErrUnknownCategory,
		},
		{
			name:        "missing dataset signal",
			script:      `exit 1`,
			category:    "EQUITY",
			expectedErr: ErrDatasetNotFound,
		},
		{
			name:        "insufficient data signal",
			script:      `exit 2`,
			category:    "EQUITY",
			expectedErr: ErrInsufficientData,
		},
		{
			name:        "unclassified crash",
			script:      `printf 'segfault' >&2; exit 139`,
			category:    "EQUITY",
			expectedErr: ErrEngineFailure,
		},
		{
			name:     "malformed output degrades to fallback",
			script:   `printf 'garbage'`,
			category: "EQUITY",
			expected: FallbackResult(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer, _ := newTestAnalyzer(t, tt.script)

			result, err := analyzer.Analyze(context.Background(), tt.category, strings.NewReader("0.1\n0.2\n0.3\n"))

			if tt.expectedErr != "" {
				var bridgeErr *Error
				require.ErrorAs(t, err, &bridgeErr)
				assert.Equal(t, tt.expectedErr, bridgeErr.Kind)
				assert.Equal(t, Result{}, result, "no result may accompany a bridge error")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAnalyzeReceivesCategoryAndDataset(t *testing.T) {
	// Engine echoes its own inputs back so attribution is checkable.
	analyzer, _ := newTestAnalyzer(t, `printf '%s,%s,0,0,0' "$2" "$(cat "$1")"`)

	result, err := analyzer.Analyze(context.Background(), "BOND", strings.NewReader("42"))
	require.NoError(t, err)

	assert.Equal(t, "BOND", result.InvestmentType)
	assert.Equal(t, "42", result.Mean)
}

func TestAnalyzeRemovesStagedDataset(t *testing.T) {
	analyzer, stagingDir := newTestAnalyzer(t, `printf 'EQUITY,0.052,87,-3,5'`)

	_, err := analyzer.Analyze(context.Background(), "EQUITY", strings.NewReader("0.1\n"))
	require.NoError(t, err)

	entries, err := os.ReadDir(stagingDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "staged dataset must be cleaned up after the request")
}

func TestAnalyzeTimeout(t *testing.T) {
	stagingDir := filepath.Join(t.TempDir(), "staging")
	analyzer := NewAnalyzer(writeFakeEngine(t, `sleep 30`), stagingDir, 100*time.Millisecond)

	_, err := analyzer.Analyze(context.Background(), "EQUITY", strings.NewReader("0.1\n"))

	var bridgeErr *Error
	require.ErrorAs(t, err, &bridgeErr)
	assert.Equal(t, ErrTimeout, bridgeErr.Kind)
}

func TestAnalyzeMissingEngineBinary(t *testing.T) {
	stagingDir := filepath.Join(t.TempDir(), "staging")
	analyzer := NewAnalyzer(filepath.Join(t.TempDir(), "no_such_engine"), stagingDir, time.Second)

	_, err := analyzer.Analyze(context.Background(), "EQUITY", strings.NewReader("0.1\n"))
	require.Error(t, err)

	var bridgeErr *Error
	assert.False(t, errors.As(err, &bridgeErr))
}

func TestAnalyzeConcurrentRequestsDoNotCrossContaminate(t *testing.T) {
	// The engine reads back the staged dataset, so any shared-path race
	// would show up as one request reporting the other's payload.
	analyzer, _ := newTestAnalyzer(t, `printf '%s,%s,0,0,0' "$2" "$(cat "$1")"`)

	const rounds = 20

	var g errgroup.Group

	for i := 0; i < rounds; i++ {
		for _, category := range []string{"EQUITY", "CRYPTO"} {
			category := category
			payload := fmt.Sprintf("payload-for-%s", category)

			g.Go(func() error {
				result, err := analyzer.Analyze(context.Background(), category, strings.NewReader(payload))
				if err != nil {
					return err
				}
				if result.InvestmentType != category || result.Mean != payload {
					return fmt.Errorf("result %+v not attributed to request %s", result, category)
				}

				return nil
			})
		}
	}

	require.NoError(t, g.Wait())
}
