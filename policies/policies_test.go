package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minimum-LaytonC/rddlsim/sim"
)

// enumState advertises a fixed candidate list.
type enumState struct {
	candidates []sim.ActionSet
}

func (s *enumState) LegalActions() []sim.ActionSet { return s.candidates }

func candidates() []sim.ActionSet {
	return []sim.ActionSet{
		{},
		{{Variable: "reboot(m1)", Value: true}},
		{{Variable: "reboot(m2)", Value: true}},
	}
}

func TestNoopAlwaysEmpty(t *testing.T) {
	p, err := NewNoop("machines", 1)
	require.NoError(t, err)

	actions, err := p.SelectActions(&enumState{candidates: candidates()})
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestRandomPicksAmongCandidates(t *testing.T) {
	p, err := NewRandom("machines", 7)
	require.NoError(t, err)

	state := &enumState{candidates: candidates()}
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		actions, err := p.SelectActions(state)
		require.NoError(t, err)
		if len(actions) == 0 {
			seen["noop"] = true
			continue
		}
		seen[actions[0].Variable] = true
	}
	assert.Len(t, seen, 3, "uniform choice eventually visits every candidate")
}

func TestRandomWithoutObservationFallsBackToNoop(t *testing.T) {
	p, err := NewRandom("machines", 7)
	require.NoError(t, err)

	// Epoch 0 of a partially observed process: no observation yet.
	actions, err := p.SelectActions(nil)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestRandomIsSeedDeterministic(t *testing.T) {
	state := &enumState{candidates: candidates()}
	first, err := NewRandom("machines", 11)
	require.NoError(t, err)
	second, err := NewRandom("machines", 11)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		a, err := first.SelectActions(state)
		require.NoError(t, err)
		b, err := second.SelectActions(state)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestWeightedPicksValidCandidate(t *testing.T) {
	p, err := NewWeighted("machines", 3)
	require.NoError(t, err)

	state := &enumState{candidates: candidates()}
	counts := map[int]int{}
	for i := 0; i < 300; i++ {
		actions, err := p.SelectActions(state)
		require.NoError(t, err)
		switch {
		case len(actions) == 0:
			counts[0]++
		case actions[0].Variable == "reboot(m1)":
			counts[1]++
		default:
			counts[2]++
		}
	}
	assert.Greater(t, counts[0], counts[2],
		"weights decay over declaration order")
}

func TestWeightedWithoutObservationFallsBackToNoop(t *testing.T) {
	p, err := NewWeighted("machines", 3)
	require.NoError(t, err)
	actions, err := p.SelectActions(nil)
	require.NoError(t, err)
	assert.Empty(t, actions)
}
