// Package routing spreads kitchen tickets across the configured stations.
package routing

import (
	"fmt"
	"strings"
)

// Balancer assigns tickets to stations by load. It is not safe for concurrent
// use; build one per queue snapshot.
type Balancer struct {
	candidates []*Candidate
}

// NewBalancer starts every station with an empty queue. Station order is the
// tie-break: earlier stations win equal scores.
func NewBalancer(stations []string) *Balancer {
	b := &Balancer{candidates: make([]*Candidate, 0, len(stations))}
	for _, st := range stations {
		b.candidates = append(b.candidates, &Candidate{Station: st})
	}
	return b
}

// Route picks the best station for a ticket with the given item count and adds
// the ticket to that station's load. With no stations configured it returns a
// zero Decision.
func (b *Balancer) Route(items int) Decision {
	if len(b.candidates) == 0 {
		return Decision{}
	}
	for _, c := range b.candidates {
		c.Score, c.Reason = scoreCandidate(c)
	}

	// Highest score; tie-break by fewest active items, then station order.
	best := b.candidates[0]
	for _, c := range b.candidates[1:] {
		if c.Score > best.Score || (c.Score == best.Score && c.ActiveItems < best.ActiveItems) {
			best = c
		}
	}
	best.ActiveItems += items
	return Decision{Station: best.Station, Score: best.Score, Reason: best.Reason}
}

// scoreCandidate favours idle stations: 100 points for an empty queue, ten
// fewer per queued item, never below zero.
func scoreCandidate(c *Candidate) (float64, string) {
	var reasons []string
	score := 100.0 - float64(c.ActiveItems)*10.0
	if score < 0 {
		score = 0
	}
	reasons = append(reasons, fmt.Sprintf("%d active items (load score %.0f)", c.ActiveItems, score))
	if c.ActiveItems == 0 {
		reasons = append(reasons, "idle")
	}
	return score, strings.Join(reasons, "; ")
}
