// Package policies bundles domain-agnostic baseline policies. Every policy
// is constructed fresh per trial with the instance name and an independent
// random seed, so no action-selection state leaks across trials and policy
// randomness never shares a stream with domain dynamics.
package policies

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/minimum-LaytonC/rddlsim/sim"
)

// Noop always chooses the empty action set.
type Noop struct{}

func NewNoop(instance string, seed uint64) (sim.Policy, error) {
	return &Noop{}, nil
}

func (n *Noop) SelectActions(observation sim.State) (sim.ActionSet, error) {
	return sim.ActionSet{}, nil
}

// Random picks uniformly among the candidate action sets the state
// advertises. With no observation, or a state that cannot enumerate its
// actions, it falls back to the noop action.
type Random struct {
	rand *rand.Rand
}

func NewRandom(instance string, seed uint64) (sim.Policy, error) {
	return &Random{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

func (r *Random) SelectActions(observation sim.State) (sim.ActionSet, error) {
	candidates := candidateActions(observation)
	if len(candidates) == 0 {
		return sim.ActionSet{}, nil
	}
	return candidates[r.rand.Intn(len(candidates))], nil
}

// Weighted samples candidate action sets with softmax weights decaying
// over declaration order, so earlier-declared actions are preferred but
// exploration never collapses.
type Weighted struct {
	rand        *rand.Rand
	temperature float64
}

func NewWeighted(instance string, seed uint64) (sim.Policy, error) {
	return &Weighted{
		rand:        rand.New(rand.NewSource(seed)),
		temperature: 0.5,
	}, nil
}

func (w *Weighted) SelectActions(observation sim.State) (sim.ActionSet, error) {
	candidates := candidateActions(observation)
	if len(candidates) == 0 {
		return sim.ActionSet{}, nil
	}

	sum := float64(0)
	weights := make([]float64, len(candidates))
	for i := range candidates {
		weights[i] = math.Exp(-w.temperature * float64(i))
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}

	i, ok := sampleuv.NewWeighted(weights, w.rand).Take()
	if !ok {
		return sim.ActionSet{}, nil
	}
	return candidates[i], nil
}

func candidateActions(observation sim.State) []sim.ActionSet {
	enum, ok := observation.(sim.ActionEnumerator)
	if !ok {
		return nil
	}
	return enum.LegalActions()
}
