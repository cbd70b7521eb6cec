package services

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hireloop/hireloop-backend/internal/types"
)

// Similarity weights. Components whose inputs are missing on either side are
// dropped and the remaining weights renormalized, so a pair with no
// organizations is judged purely on what both sides actually have.
const (
	weightName         = 0.60
	weightOrganization = 0.15
	weightDescription  = 0.10
	weightTechnologies = 0.15
)

var nameStopWords = map[string]bool{
	"project": true,
	"the":     true,
	"a":       true,
	"an":      true,
}

// SimilarityScorer scores two project descriptors in [0,1]. It is a pure
// computation: no I/O, no state.
type SimilarityScorer struct{}

func NewSimilarityScorer() *SimilarityScorer {
	return &SimilarityScorer{}
}

// Score returns 1.0 immediately when the normalized names are identical,
// otherwise a weighted average of the sub-scores that are present.
func (s *SimilarityScorer) Score(a, b types.ProjectDescriptor) float64 {
	nameA := NormalizeProjectName(a.Name)
	nameB := NormalizeProjectName(b.Name)
	if nameA == "" || nameB == "" {
		return 0.0
	}
	if nameA == nameB {
		return 1.0
	}

	type component struct {
		score  float64
		weight float64
	}
	components := []component{
		{score: tokenSortRatio(nameA, nameB), weight: weightName},
	}

	orgA := strings.ToLower(strings.TrimSpace(a.Organization))
	orgB := strings.ToLower(strings.TrimSpace(b.Organization))
	if orgA != "" && orgB != "" {
		components = append(components, component{score: levenshteinRatio(orgA, orgB), weight: weightOrganization})
	}

	descA := strings.ToLower(strings.TrimSpace(a.Description))
	descB := strings.ToLower(strings.TrimSpace(b.Description))
	if descA != "" && descB != "" {
		components = append(components, component{score: partialRatio(descA, descB), weight: weightDescription})
	}

	if len(a.Technologies) > 0 && len(b.Technologies) > 0 {
		components = append(components, component{score: jaccard(a.Technologies, b.Technologies), weight: weightTechnologies})
	}

	totalWeight := 0.0
	weightedSum := 0.0
	for _, c := range components {
		totalWeight += c.weight
		weightedSum += c.score * c.weight
	}
	if totalWeight == 0 {
		return 0.0
	}
	return weightedSum / totalWeight
}

// NormalizeProjectName lowercases, strips punctuation, collapses whitespace
// and drops leading noise words, so "The Ryder Project " and "ryder" compare
// equal.
func NormalizeProjectName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteRune(' ')
		}
	}
	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		if !nameStopWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// levenshteinRatio is the classic edit-distance similarity:
// (len(a)+len(b)-distance) / (len(a)+len(b)), computed over runes.
func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return float64(total-levenshteinDistance(ra, rb)) / float64(total)
}

func levenshteinDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// tokenSortRatio compares the strings with their tokens sorted, so word order
// differences ("platform billing" vs "billing platform") do not hurt the score.
func tokenSortRatio(a, b string) float64 {
	return levenshteinRatio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// partialRatio slides the shorter string over the longer one and keeps the
// best windowed ratio, approximating substring containment similarity.
func partialRatio(a, b string) float64 {
	shorter := []rune(a)
	longer := []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		return 0.0
	}
	best := 0.0
	for start := 0; start+len(shorter) <= len(longer); start++ {
		window := longer[start : start+len(shorter)]
		r := levenshteinRatio(string(shorter), string(window))
		if r > best {
			best = r
		}
		if best == 1.0 {
			break
		}
	}
	return best
}

// jaccard computes case-insensitive set overlap of two technology lists.
func jaccard(a, b []string) float64 {
	setA := map[string]bool{}
	for _, v := range a {
		key := strings.ToLower(strings.TrimSpace(v))
		if key != "" {
			setA[key] = true
		}
	}
	setB := map[string]bool{}
	for _, v := range b {
		key := strings.ToLower(strings.TrimSpace(v))
		if key != "" {
			setB[key] = true
		}
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}
	intersection := 0
	for k := range setA {
		if setB[k] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
