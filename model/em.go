package model

import (
	"fmt"
	"math"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/mat"

	"github.com/0h-n0/plsa/tensor"
	"github.com/0h-n0/plsa/util"
)

// seed for the previous log-likelihood so that the first cycle never
// counts as converged
const initialLogLikelihood = 1000.0

// Train runs E/M cycles until the relative change of the log-likelihood
// drops below the configured epsilon or the iteration limit is hit.
// Reaching the limit is not an error; inspect the returned state.
func (m *PLSA) Train() (State, error) {
	m.state = Iterating
	prev := initialLogLikelihood
	for iterIdx := 0; iterIdx < m.params.MaxIter; iterIdx += 1 {
		llh, err := m.Step()
		if err != nil {
			log.Errorf("plsa: iter %5d failed: %v", iterIdx, err)
			return m.state, err
		}

		delta := relativeChange(llh, prev)
		if iterIdx%10 == 0 {
			log.Infof("iter %5d, likelihood %f", iterIdx, llh)
		}
		if m.hook != nil {
			m.hook(Iteration{Iter: iterIdx, LogLikelihood: llh, Delta: delta})
		}
		if delta < m.params.Epsilon {
			m.state = Converged
			log.Infof("plsa: converged after %d iterations, likelihood %f", iterIdx+1, llh)
			return m.state, nil
		}
		prev = llh
	}

	m.state = MaxIterReached
	log.Infof("plsa: stopped after %d iterations without convergence", m.params.MaxIter)
	return m.state, nil
}

// Step runs one E-step followed by one M-step and returns the resulting
// log-likelihood.
func (m *PLSA) Step() (float64, error) {
	if m.state == Initialized {
		m.state = Iterating
	}
	if log.V(2) {
		log.Infof("plsa: pz = %v", m.pz)
	}
	if err := m.eStep(); err != nil {
		return 0, err
	}
	if err := m.mStep(); err != nil {
		return 0, err
	}
	llh, err := m.LogLikelihood()
	if err != nil {
		return 0, err
	}
	m.iterations += 1
	m.llhs = append(m.llhs, llh)
	return llh, nil
}

// eStep recomputes P(z|w,d) = P(z) P(w|z) P(d|z) / sum_z' (...) for every
// (w, d). A cell whose numerators all underflow gets the uniform 1/K.
func (m *PLSA) eStep() error {
	joint, err := m.joint()
	if err != nil {
		return err
	}

	cells := m.vocab * m.docNum
	sums := joint.SumAxis(0).Data()
	data := joint.Data()
	uniform := 1 / float64(m.topicNum)
	degenerate := 0
	for c, sum := range sums {
		if util.Degenerate(sum) {
			degenerate += 1
			for k := 0; k < m.topicNum; k += 1 {
				data[k*cells+c] = uniform
			}
			continue
		}
		for k := 0; k < m.topicNum; k += 1 {
			data[k*cells+c] /= sum
		}
	}
	if degenerate > 0 {
		m.degenerate += degenerate
		log.Warningf("plsa: %d (word, document) cells have no posterior mass, using uniform", degenerate)
	}

	m.pzwd = joint
	if log.V(3) {
		log.Infof("plsa: pz_wd = %v", m.pzwd.Data())
	}
	return nil
}

// mStep re-estimates pz, pw_z and pd_z from the expected counts
// n(d, w) P(z|w,d).
func (m *PLSA) mStep() error {
	weighted, err := tensor.BroadcastMul(m.counts, m.pzwd)
	if err != nil {
		return m.shapeError("m-step", err)
	}

	pwz := weighted.SumAxis(2) // topic x word
	pdz := weighted.SumAxis(1) // topic x document
	pz := pwz.SumAxis(1)       // topic

	m.pz = pz.Data()
	m.pwz = mat.NewDense(m.topicNum, m.vocab, pwz.Data())
	m.pdz = mat.NewDense(m.topicNum, m.docNum, pdz.Data())
	m.normalize()

	if log.V(2) {
		log.Infof("plsa: pw_z = %v", mat.Formatted(m.pwz, mat.Squeeze()))
		log.Infof("plsa: pd_z = %v", mat.Formatted(m.pdz, mat.Squeeze()))
	}
	return nil
}

// joint returns the unnormalised topic x word x document tensor
// P(z) P(w|z) P(d|z).
func (m *PLSA) joint() (*tensor.Dense, error) {
	pz, err := tensor.FromSlice(m.pz, m.topicNum, 1, 1)
	if err != nil {
		return nil, err
	}
	pwz, err := tensor.FromSlice(rawData(m.pwz), m.topicNum, m.vocab, 1)
	if err != nil {
		return nil, err
	}
	pdz, err := tensor.FromSlice(rawData(m.pdz), m.topicNum, 1, m.docNum)
	if err != nil {
		return nil, err
	}

	pzw, err := tensor.BroadcastMul(pz, pwz)
	if err != nil {
		return nil, m.shapeError("joint", err)
	}
	joint, err := tensor.BroadcastMul(pzw, pdz)
	if err != nil {
		return nil, m.shapeError("joint", err)
	}
	return joint, nil
}

func (m *PLSA) shapeError(stage string, err error) error {
	log.Errorf("plsa: %s: %v", stage, err)
	return fmt.Errorf("plsa %s: %w", stage, err)
}

// rawData returns the row major elements of a, copying only when a is
// a strided view.
func rawData(a *mat.Dense) []float64 {
	raw := a.RawMatrix()
	if raw.Stride == raw.Cols {
		return raw.Data[:raw.Rows*raw.Cols]
	}
	return mat.DenseCopyOf(a).RawMatrix().Data
}

func relativeChange(llh, prev float64) float64 {
	if prev == 0 {
		return math.Abs(llh - prev)
	}
	return math.Abs((llh - prev) / prev)
}
