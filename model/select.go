package model

import (
	"fmt"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/mat"
)

// SelectByAIC trains one PLSA per candidate topic number and returns the
// model with the lowest AIC together with the AIC of every candidate, in
// candidate order.
func SelectByAIC(counts mat.Matrix, candidates []int, opts ...Option) (*PLSA, []float64, error) {
	if len(candidates) == 0 {
		return nil, nil, ErrNoCandidates
	}

	var best *PLSA
	bestScore := 0.0
	scores := make([]float64, len(candidates))
	for i, k := range candidates {
		m, err := NewPLSA(counts, k, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("topics %d: %w", k, err)
		}
		state, err := m.Train()
		if err != nil {
			return nil, nil, fmt.Errorf("topics %d: %w", k, err)
		}
		score, err := m.AIC()
		if err != nil {
			return nil, nil, fmt.Errorf("topics %d: %w", k, err)
		}
		log.Infof("plsa: topics %d, %s after %d iterations, aic %f", k, state, m.Iterations(), score)

		scores[i] = score
		if best == nil || score < bestScore {
			best, bestScore = m, score
		}
	}
	return best, scores, nil
}
