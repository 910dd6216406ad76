package classify

import (
	"strings"
	"unicode/utf8"
)

// Language signal tables for the content heuristic. Scores are occurrence
// counts; ties break by fixed precedence: Python > JavaScript > HTML > Other.
var codeSignals = []struct {
	sub     string
	signals []string
}{
	{"Python", []string{"def ", "import ", "elif ", "self.", "print("}},
	{"JavaScript", []string{"function", "const ", "console.log", "=> {", "var "}},
	{"HTML", []string{"<html", "<body", "<div", "<head", "</"}},
	{"Other", []string{"#!/", "select ", "#include", "func ", "create table"}},
}

var logSignals = []string{"error", "warning", "timestamp", "]: ", " - info"}

// heuristicOutcome distinguishes a confident answer from the two
// inconclusive shapes the chain cares about.
type heuristicOutcome int

const (
	heuristicMatched heuristicOutcome = iota
	// heuristicPlainText: readable text with no recognizable signal; the
	// injected content classifier (if any) gets a look before the
	// Documents/Text default applies.
	heuristicPlainText
	// heuristicNotText: binary or empty content; nothing below this stage
	// can help.
	heuristicNotText
)

// heuristic scans a bounded sample of text-like content for keyword signals.
func heuristic(sample []byte) (Result, heuristicOutcome) {
	if len(sample) == 0 || !isTextLike(sample) {
		return Result{}, heuristicNotText
	}

	lower := strings.ToLower(string(sample))

	bestSub := ""
	bestScore := 0
	for _, lang := range codeSignals {
		score := 0
		for _, signal := range lang.signals {
			score += strings.Count(lower, strings.ToLower(signal))
		}
		// Strictly-greater keeps the precedence order on ties.
		if score > bestScore {
			bestScore = score
			bestSub = lang.sub
		}
	}
	if bestScore > 0 {
		return Result{CategoryCode, bestSub}, heuristicMatched
	}

	logScore := 0
	for _, signal := range logSignals {
		logScore += strings.Count(lower, signal)
	}
	if logScore >= 2 {
		return Result{CategoryTemporary, "Logs"}, heuristicMatched
	}

	return Result{CategoryDocuments, "Text"}, heuristicPlainText
}

// isTextLike reports whether the sample looks like readable text: valid-ish
// UTF-8, no NUL bytes, and mostly printable runes.
func isTextLike(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}
	printable := 0
	total := 0
	for i := 0; i < len(sample); {
		r, size := utf8.DecodeRune(sample[i:])
		if r == 0 {
			return false
		}
		if r == utf8.RuneError && size == 1 {
			// Tolerate a truncated rune at the end of the sample window.
			if i+size < len(sample) {
				return false
			}
			break
		}
		total++
		if r == '\n' || r == '\r' || r == '\t' || r >= 0x20 {
			printable++
		}
		i += size
	}
	if total == 0 {
		return false
	}
	return printable*100/total >= 95
}
