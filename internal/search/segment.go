package search

import (
	bsegment "github.com/blevesearch/segment"
)

// Segmenter splits text into word-level tokens. Implementations must be
// deterministic for a fixed input: the same corpus always yields the same
// index, and a query is cut exactly like the documents were.
type Segmenter interface {
	Segment(text string) []string
}

// UnicodeSegmenter segments on UAX#29 word boundaries. Scripts without
// whitespace word boundaries come out as one token per ideograph.
type UnicodeSegmenter struct{}

func (UnicodeSegmenter) Segment(text string) []string {
	seg := bsegment.NewWordSegmenterDirect([]byte(text))
	var out []string
	for seg.Segment() {
		if seg.Type() == bsegment.None {
			continue
		}
		out = append(out, seg.Text())
	}
	if err := seg.Err(); err != nil {
		// The segmenter only errors on malformed reads from its source; a
		// byte-slice source cannot fail mid-stream, but never index a
		// half-segmented text.
		return nil
	}
	return out
}

// CJKSegmenter refines UnicodeSegmenter for Han text: runs of adjacent
// ideographs are recombined into overlapping bigrams, which matches how
// two-character words dominate modern Chinese. A lone ideograph stays a
// unigram. Non-ideographic tokens pass through unchanged.
type CJKSegmenter struct{}

func (CJKSegmenter) Segment(text string) []string {
	seg := bsegment.NewWordSegmenterDirect([]byte(text))
	var out []string
	var run []string
	flush := func() {
		switch {
		case len(run) == 1:
			out = append(out, run[0])
		case len(run) > 1:
			for i := 0; i+1 < len(run); i++ {
				out = append(out, run[i]+run[i+1])
			}
		}
		run = run[:0]
	}
	for seg.Segment() {
		switch seg.Type() {
		case bsegment.Ideo:
			run = append(run, seg.Text())
		case bsegment.None:
			flush()
		default:
			flush()
			out = append(out, seg.Text())
		}
	}
	flush()
	if err := seg.Err(); err != nil {
		return nil
	}
	return out
}
