package sim

// Step is one (state, action, reward) triple of a trajectory. The state is
// kept as its observable-column snapshot, taken before the epoch advanced,
// so later epochs cannot alias it.
type Step struct {
	Columns []Column
	Actions ActionSet
	Reward  float64
}

// Trial is one full episode: the ordered steps, the accumulated discounted
// return and a 1-based index within its batch. The runner mutates it step
// by step; once returned it is treated as immutable.
type Trial struct {
	Index  int
	Steps  []Step
	Return float64
}

func NewTrial(index int) *Trial {
	return &Trial{
		Index: index,
		Steps: make([]Step, 0),
	}
}

func (t *Trial) Len() int {
	return len(t.Steps)
}

// Rewards returns the undiscounted reward sequence of the trial.
func (t *Trial) Rewards() []float64 {
	rewards := make([]float64, len(t.Steps))
	for i, s := range t.Steps {
		rewards[i] = s.Reward
	}
	return rewards
}
