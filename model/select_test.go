package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestSelectByAIC(t *testing.T) {
	candidates := []int{1, 2, 3}

	best, scores, err := SelectByAIC(exampleCounts(), candidates, WithSeed(9))
	require.NoError(t, err)
	require.Len(t, scores, len(candidates))

	idx := floats.MinIdx(scores)
	assert.Equal(t, candidates[idx], best.TopicNum())

	aic, err := best.AIC()
	require.NoError(t, err)
	assert.Equal(t, scores[idx], aic)
	assert.NotEqual(t, Initialized, best.State())
}

func TestSelectByAICErrors(t *testing.T) {
	_, _, err := SelectByAIC(exampleCounts(), nil)
	assert.ErrorIs(t, err, ErrNoCandidates)

	_, _, err = SelectByAIC(exampleCounts(), []int{2, 0})
	assert.ErrorIs(t, err, ErrBadTopicNum)
}
