package engine

import "strings"

// Result holds the metrics computed by the engine. Values stay as the raw
// strings printed by the engine; display formatting (percent suffixes)
// belongs to the presentation layer.
type Result struct {
	InvestmentType string
	Mean           string
	Stability      string
	WorstCaseMin   string
	WorstCaseMax   string
}

const resultFieldCount = 5

// FallbackResult is returned when the engine exits cleanly but prints
// something other than the expected five-field line.
func FallbackResult() Result {
	return Result{
		InvestmentType: "N/A",
		Mean:           "0",
		Stability:      "0",
		WorstCaseMin:   "0",
		WorstCaseMax:   "0",
	}
}

// Decode parses the engine's stdout line:
//
//	investmentType,mean,stability,worstCaseMin,worstCaseMax
//
// The line is trimmed as a whole before splitting on the literal comma.
// A field count other than five is not an error: the caller gets the
// fallback record and ok=false so it can log the condition.
func Decode(stdout string) (Result, bool) {
	fields := strings.Split(strings.TrimSpace(stdout), ",")
	if len(fields) != resultFieldCount {
		return FallbackResult(), false
	}

	return Result{
		InvestmentType: fields[0],
		Mean:           fields[1],
		Stability:      fields[2],
		WorstCaseMin:   fields[3],
		WorstCaseMax:   fields[4],
	}, true
}
