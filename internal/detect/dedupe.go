package detect

import (
	"log"
	"sort"
)

// dedupeCandidates removes near-duplicate candidates in a single
// left-to-right scan: a candidate whose bounding box overlaps an already
// accepted one with IoU above the threshold is dropped, so insertion order
// (strategy order, then within-strategy order) decides which twin survives.
func dedupeCandidates(candidates []BoundaryCandidate, iouThreshold float64) []BoundaryCandidate {
	accepted := make([]BoundaryCandidate, 0, len(candidates))
	for _, cand := range candidates {
		bounds := cand.Bounds()
		duplicate := false
		for _, kept := range accepted {
			if bounds.IoU(kept.Bounds()) > iouThreshold {
				log.Printf("detect: duplicate candidate dropped, combined bounds %+v", bounds.Union(kept.Bounds()))
				duplicate = true
				break
			}
		}
		if !duplicate {
			accepted = append(accepted, cand)
		}
	}
	return accepted
}

// rankCandidates sorts candidates by confidence descending and truncates to
// the requested maximum. The sort is stable so equal-confidence candidates
// keep their insertion order.
func rankCandidates(candidates []BoundaryCandidate, max int) []BoundaryCandidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	if max > 0 && len(candidates) > max {
		candidates = candidates[:max]
	}
	return candidates
}
