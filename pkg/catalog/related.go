package catalog

import (
	"sort"
	"strings"
)

// Relatedness weights. Category is the strongest signal, then
// subcategory, then each shared tag or material.
const (
	scoreCategory    = 4
	scoreSubcategory = 2
	scoreTag         = 1
	scoreMaterial    = 1
)

// Related scores every other product against p and returns the top n
// by score, ties keeping snapshot order. Products sharing nothing with
// p are never recommended, so the result can be shorter than n.
func Related(p Product, all []Product, n int) []Product {
	if n <= 0 {
		return nil
	}

	type scored struct {
		product Product
		score   int
	}

	candidates := make([]scored, 0, len(all))
	for _, other := range all {
		if other.ID == p.ID {
			continue
		}
		s := relatedScore(p, other)
		if s > 0 {
			candidates = append(candidates, scored{product: other, score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]Product, len(candidates))
	for i, c := range candidates {
		out[i] = c.product
	}
	return out
}

func relatedScore(p, other Product) int {
	score := 0
	if p.Category != "" && strings.EqualFold(p.Category, other.Category) {
		score += scoreCategory
	}
	if p.Subcategory != "" && strings.EqualFold(p.Subcategory, other.Subcategory) {
		score += scoreSubcategory
	}
	score += scoreTag * sharedFold(p.Tags, other.Tags)
	score += scoreMaterial * sharedFold(p.Materials, other.Materials)
	return score
}

// sharedFold counts values present in both slices, case-insensitively.
func sharedFold(a, b []string) int {
	count := 0
	for _, x := range a {
		for _, y := range b {
			if strings.EqualFold(x, y) {
				count++
				break
			}
		}
	}
	return count
}
