package model

import (
	"math"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/0h-n0/plsa/tensor"
	"github.com/0h-n0/plsa/util"
)

func init() {
	Register("plsa", func(counts mat.Matrix, topicNum int, opts ...Option) (Model, error) {
		m, err := NewPLSA(counts, topicNum, opts...)
		if err != nil {
			return nil, err
		}
		return m, nil
	})
}

// PLSA fits P(w, d) = sum_z P(z) P(w|z) P(d|z) to a document-word count
// matrix with EM. A PLSA is not safe for concurrent use.
type PLSA struct {
	input    *mat.Dense    // document x word counts
	counts   *tensor.Dense // 1 x word x document, input transposed for broadcasting
	docNum   int
	vocab    int
	topicNum int
	params   EMParams
	hook     func(Iteration)

	pz   []float64     // topic prior
	pwz  *mat.Dense    // topic x word
	pdz  *mat.Dense    // topic x document
	pzwd *tensor.Dense // topic x word x document posterior

	state      State
	iterations int
	llhs       []float64
	degenerate int
}

// NewPLSA creates a PLSA instance over a copy of counts with randomly
// initialised distributions.
func NewPLSA(counts mat.Matrix, topicNum int, opts ...Option) (*PLSA, error) {
	if topicNum <= 0 {
		return nil, ErrBadTopicNum
	}
	if counts == nil {
		return nil, ErrEmptyInput
	}
	docNum, vocab := counts.Dims()
	if docNum <= 0 || vocab <= 0 {
		return nil, ErrEmptyInput
	}
	input := mat.DenseCopyOf(counts)
	for d := 0; d < docNum; d += 1 {
		for _, v := range input.RawRowView(d) {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, ErrNegativeCount
			}
		}
	}

	cfg := newConfig(opts)
	if err := cfg.params.validate(); err != nil {
		return nil, err
	}

	uniform := distuv.Uniform{Min: 0, Max: 1, Src: cfg.src}
	random := func(n int) []float64 {
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = uniform.Rand()
		}
		return vals
	}

	m := &PLSA{
		input:    input,
		docNum:   docNum,
		vocab:    vocab,
		topicNum: topicNum,
		params:   cfg.params,
		hook:     cfg.hook,
		pz:       random(topicNum),
		pwz:      mat.NewDense(topicNum, vocab, random(topicNum*vocab)),
		pdz:      mat.NewDense(topicNum, docNum, random(topicNum*docNum)),
		state:    Initialized,
	}
	pzwd, err := tensor.FromSlice(random(topicNum*vocab*docNum), topicNum, vocab, docNum)
	if err != nil {
		return nil, err
	}
	m.pzwd = pzwd
	m.counts, err = tensor.FromMatrix(input.T()).Reshape(1, vocab, docNum)
	if err != nil {
		return nil, err
	}

	m.normalize()

	log.Infof("plsa: %d documents, vocabulary size %d, %d topics", docNum, vocab, topicNum)
	return m, nil
}

// normalize restores the sum-to-one invariants of pz, pw_z and pd_z.
func (m *PLSA) normalize() {
	if !util.NormalizeVector(m.pz) {
		m.degenerate += 1
		log.Warningf("plsa: topic prior has no mass, using uniform")
	}
	if rows := util.NormalizeRows(m.pwz); len(rows) > 0 {
		m.degenerate += len(rows)
		log.Warningf("plsa: word distribution of topics %v has no mass, using uniform", rows)
	}
	if rows := util.NormalizeRows(m.pdz); len(rows) > 0 {
		m.degenerate += len(rows)
		log.Warningf("plsa: document distribution of topics %v has no mass, using uniform", rows)
	}
}

func (m *PLSA) TopicNum() int  { return m.topicNum }
func (m *PLSA) DocNum() int    { return m.docNum }
func (m *PLSA) VocabSize() int { return m.vocab }

func (m *PLSA) Params() EMParams { return m.params }

func (m *PLSA) State() State { return m.state }

// Iterations returns the number of E/M cycles run so far.
func (m *PLSA) Iterations() int { return m.iterations }

// LogLikelihoods returns the log-likelihood recorded after every cycle.
func (m *PLSA) LogLikelihoods() []float64 {
	return append([]float64(nil), m.llhs...)
}

// Degenerate returns how many normalisations fell back to uniform.
func (m *PLSA) Degenerate() int { return m.degenerate }

func (m *PLSA) Pz() []float64 {
	return append([]float64(nil), m.pz...)
}

func (m *PLSA) PwZ() *mat.Dense {
	return mat.DenseCopyOf(m.pwz)
}

func (m *PLSA) PdZ() *mat.Dense {
	return mat.DenseCopyOf(m.pdz)
}

func (m *PLSA) PzWD() *tensor.Dense {
	return m.pzwd.Clone()
}

// TopWords returns the indices of the n most probable words of topic,
// most probable first.
func (m *PLSA) TopWords(topic, n int) []int {
	if topic < 0 || topic >= m.topicNum {
		panic(tensor.ErrIndexOutOfRange)
	}
	probs := append([]float64(nil), m.pwz.RawRowView(topic)...)
	idx := make([]int, len(probs))
	floats.Argsort(probs, idx)

	if n > len(idx) {
		n = len(idx)
	}
	top := make([]int, n)
	for i := 0; i < n; i += 1 {
		top[i] = idx[len(idx)-1-i]
	}
	return top
}
