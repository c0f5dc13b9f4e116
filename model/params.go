package model

import (
	"math/rand/v2"
	"time"
)

const (
	DefaultMaxIter = 200
	DefaultEpsilon = 1e-6
)

// EMParams holds the convergence knobs of the EM loop.
type EMParams struct {
	MaxIter int     // maximum number of E/M cycles
	Epsilon float64 // relative log-likelihood change that counts as converged
}

func DefaultEMParams() EMParams {
	return EMParams{
		MaxIter: DefaultMaxIter,
		Epsilon: DefaultEpsilon,
	}
}

func (p EMParams) validate() error {
	if p.MaxIter <= 0 || !(p.Epsilon >= 0) {
		return ErrBadParams
	}
	return nil
}

// State is the position of a model in its training lifecycle.
type State int

const (
	Initialized State = iota
	Iterating
	Converged
	MaxIterReached
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case MaxIterReached:
		return "max_iter_reached"
	}
	return "unknown"
}

// Iteration is reported to the iteration hook after every E/M cycle.
type Iteration struct {
	Iter          int
	LogLikelihood float64
	Delta         float64 // relative change against the previous cycle
}

type config struct {
	params EMParams
	src    rand.Source
	hook   func(Iteration)
}

type Option func(*config)

func WithMaxIter(n int) Option {
	return func(c *config) { c.params.MaxIter = n }
}

func WithEpsilon(eps float64) Option {
	return func(c *config) { c.params.Epsilon = eps }
}

func WithEMParams(p EMParams) Option {
	return func(c *config) { c.params = p }
}

// WithSeed makes parameter initialisation reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15) }
}

// WithSource draws initial parameters from src.
func WithSource(src rand.Source) Option {
	return func(c *config) { c.src = src }
}

// WithIterationHook registers fn to be called after every E/M cycle.
func WithIterationHook(fn func(Iteration)) Option {
	return func(c *config) { c.hook = fn }
}

func newConfig(opts []Option) *config {
	c := &config{params: DefaultEMParams()}
	for _, opt := range opts {
		opt(c)
	}
	if c.src == nil {
		now := uint64(time.Now().UnixNano())
		c.src = rand.NewPCG(now, now>>1)
	}
	return c
}
