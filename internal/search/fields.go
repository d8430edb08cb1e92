package search

import "github.com/amiaverse/amiablog/models"

// Field weights for ranking. A title hit always outranks a description hit,
// which outranks tags, keywords, and finally the body.
const (
	weightBody = iota + 1
	weightKeywords
	weightTags
	weightDescription
	weightTitle
)

type field struct {
	text   string
	weight int
}

// searchFields lists every searchable field of a post with its weight. Tags
// and keywords stay separate entries so a query cannot match across their
// boundaries.
func searchFields(p models.Post) []field {
	f := make([]field, 0, 3+len(p.Tags)+len(p.Keywords))
	f = append(f,
		field{text: p.Title, weight: weightTitle},
		field{text: p.Description, weight: weightDescription},
	)
	for _, t := range p.Tags {
		f = append(f, field{text: t, weight: weightTags})
	}
	for _, k := range p.Keywords {
		f = append(f, field{text: k, weight: weightKeywords})
	}
	return append(f, field{text: p.Body, weight: weightBody})
}
