package entity

import (
	"fmt"
	"strings"
	"unicode"

	"twse_ingest/internal/feature/ingest/domain"
)

// Watchlist is the validated, read-only set of security codes tracked by a run.
type Watchlist struct {
	codes []string
	index map[string]struct{}
}

// NewWatchlist validates codes and builds a Watchlist.
// Every code must be non-empty and consist only of letters and digits.
func NewWatchlist(codes []string) (Watchlist, error) {
	w := Watchlist{
		codes: make([]string, 0, len(codes)),
		index: make(map[string]struct{}, len(codes)),
	}
	for _, c := range codes {
		if !isAlnum(c) {
			return Watchlist{}, fmt.Errorf("%w: %q", domain.ErrInvalidStockCode, c)
		}
		if _, ok := w.index[c]; ok {
			continue
		}
		w.index[c] = struct{}{}
		w.codes = append(w.codes, c)
	}
	return w, nil
}

// Contains reports whether code is tracked.
func (w Watchlist) Contains(code string) bool {
	_, ok := w.index[code]
	return ok
}

// Codes returns the tracked codes in their configured order.
func (w Watchlist) Codes() []string {
	out := make([]string, len(w.codes))
	copy(out, w.codes)
	return out
}

// Len returns the number of tracked codes.
func (w Watchlist) Len() int {
	return len(w.codes)
}

// SplitCodes splits a comma-separated list and trims each entry.
// Empty entries are kept so that validation can reject them.
func SplitCodes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
