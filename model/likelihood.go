package model

import (
	"math"
)

// LogLikelihood computes sum_{d,w} n(d,w) log P(w,d) where P(w,d) is the
// topic-marginalised joint distribution renormalised over all cells.
// Cells with a zero count contribute nothing.
func (m *PLSA) LogLikelihood() (float64, error) {
	joint, err := m.joint()
	if err != nil {
		return 0, err
	}
	pwd := joint.SumAxis(0) // word x document
	total := pwd.Sum()
	probs := pwd.Data()

	llh := 0.0
	for d := 0; d < m.docNum; d += 1 {
		row := m.input.RawRowView(d)
		for w, n := range row {
			if n == 0 {
				continue
			}
			llh += n * math.Log(probs[w*m.docNum+d]/total)
		}
	}
	return llh, nil
}

// AIC returns 2K - 2 log L. Lower is better.
func (m *PLSA) AIC() (float64, error) {
	llh, err := m.LogLikelihood()
	if err != nil {
		return 0, err
	}
	return 2*float64(m.topicNum) - 2*llh, nil
}
