package sim

import (
	"golang.org/x/exp/rand"
)

// State is the full record of fluent assignments at one decision epoch.
// It is owned by the decision model; the engine only requests operations
// on it and never inspects or mutates it directly.
type State interface{}

// ActionEnumerator is implemented by states that can enumerate the
// candidate action sets available from them. Bundled policies use it to
// pick actions; models with impractically large action spaces may omit it.
type ActionEnumerator interface {
	LegalActions() []ActionSet
}

// Assignment binds one action-typed variable to a value for one epoch.
type Assignment struct {
	Variable string
	Value    any
}

// ActionSet is the collection of assignments a policy chooses for one
// epoch. An empty set is the noop action.
type ActionSet []Assignment

// Instance identifies a fully parameterized scenario over a domain model.
// Immutable for the lifetime of a run.
type Instance struct {
	Name   string
	Domain string
	// Horizon is the maximum episode length. Zero or negative means
	// unbounded; the episode then runs until the termination predicate
	// fires.
	Horizon  int
	Discount float64
	// PartiallyObserved marks processes where policies see only
	// observation fluents, never the hidden state.
	PartiallyObserved bool
	// Terminates reports whether a termination predicate is configured.
	Terminates bool
}

// Model is the decision-model contract the engine drives. One model
// instance is reused across the trials of a batch; Reset starts a fresh
// episode. All randomness consumed during a trial must come from the
// source handed to SampleNextState.
type Model interface {
	Instance() Instance

	// Reset returns the initial state for a new episode, clearing any
	// observation history from previous episodes.
	Reset() (State, error)

	// CheckInvariants validates the state constraints of the domain.
	// A violation means the model itself is inconsistent.
	CheckInvariants(state State) error

	// CheckActionLegality validates preconditions that may reference the
	// actions and the current non-hidden state.
	CheckActionLegality(state State, actions ActionSet) error

	// SampleNextState samples the next epoch's full state (hidden,
	// intermediate and observation fluents) given the validated actions.
	SampleNextState(state State, actions ActionSet, src *rand.Rand) (State, error)

	// Advance commits the sampled state as current. Observation history
	// is retained; only Reset clears it.
	Advance(state State) (State, error)

	// EvaluateReward computes the scalar reward of a state. It is a pure
	// function of the state and performs no additional sampling.
	EvaluateReward(state State) (float64, error)

	// CheckTermination evaluates the termination predicate, if any.
	CheckTermination(state State) (bool, error)

	// ObservableColumns enumerates the loggable fluent values of a state
	// in a stable declaration order.
	ObservableColumns(state State) []Column
}

// Policy selects the actions for one epoch given the observable state.
// The observation is nil exactly once per episode of a partially observed
// process: on the first epoch, before any observations exist.
type Policy interface {
	SelectActions(observation State) (ActionSet, error)
}

// Visualizer is notified when an episode ends. The engine imposes no
// other hook; rendering of states is outside its scope.
type Visualizer interface {
	EpisodeEnd(trial *Trial)
}

// PolicyFactory builds a fresh policy for one trial. Policies hold their
// own random stream, independent of the model's, so exploration noise
// cannot perturb domain dynamics.
type PolicyFactory func(instance string, seed uint64) (Policy, error)

// VisualizerFactory builds a fresh visualizer for one trial.
type VisualizerFactory func() Visualizer

// ModelFactory builds the decision model for a named instance.
type ModelFactory func() (Model, error)
