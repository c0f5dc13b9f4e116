package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/0h-n0/plsa/tensor"
)

var constructors = make(map[string]ModelCtor)

// the common interface topic models trained by EM should follow
type Model interface {
	// train model until convergence or the iteration limit
	Train() (State, error)
	// run a single E-step/M-step cycle
	Step() (float64, error)
	// corpus log-likelihood under the current parameters
	LogLikelihood() (float64, error)
	// Akaike information criterion, lower is better
	AIC() (float64, error)
	// get topic prior
	Pz() []float64
	// get word-given-topic distribution, topics x words
	PwZ() *mat.Dense
	// get document-given-topic distribution, topics x documents
	PdZ() *mat.Dense
	// get topic posterior, topics x words x documents
	PzWD() *tensor.Dense
}

// new models should register themselves using this function
func Register(modelType string, m ModelCtor) {
	constructors[modelType] = m
}

type ModelCtor func(counts mat.Matrix, topicNum int, opts ...Option) (Model, error)

func GetModel(modelType string) (ModelCtor, error) {
	if _, ok := constructors[modelType]; !ok {
		return nil, fmt.Errorf("model %s not registered", modelType)
	}
	return constructors[modelType], nil
}
