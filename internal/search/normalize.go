package search

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// normalize case-folds and NFKC-normalizes text. Queries and indexed fields
// go through the same path so comparisons are byte-for-byte.
func normalize(s string) string {
	// Casers are stateful, so build one per call rather than sharing.
	return cases.Fold().String(norm.NFKC.String(s))
}
