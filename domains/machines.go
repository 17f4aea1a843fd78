// Package domains bundles in-process decision models. They stand in for
// the description-language frontend: each model implements the sim.Model
// contract directly instead of being compiled from a domain file.
package domains

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/minimum-LaytonC/rddlsim/sim"
)

const upCountVar = "up-count"

// MachinesConfig parameterizes a network-of-machines process: every
// machine is up or down, up machines fail more often when their ring
// neighbors are down, and the only action is rebooting a single machine
// per epoch. Reward is the number of machines running.
type MachinesConfig struct {
	Name     string
	Machines int
	Horizon  int
	Discount float64

	// PartiallyObserved hides the true running fluents; policies see a
	// noisy running-obs channel instead.
	PartiallyObserved bool
	ObservationNoise  float64

	// Terminates ends the episode once every machine is down.
	Terminates bool

	RebootSuccess float64 // probability a rebooted machine comes up
	BaseUp        float64 // baseline probability an up machine stays up
	NeighborBonus float64 // bonus scaled by the fraction of up neighbors
}

// DefaultMachines is the fully observed instance.
func DefaultMachines() MachinesConfig {
	return MachinesConfig{
		Name:          "machines",
		Machines:      3,
		Horizon:       40,
		Discount:      0.9,
		Terminates:    true,
		RebootSuccess: 1.0,
		BaseUp:        0.45,
		NeighborBonus: 0.5,
	}
}

// DefaultMachinesPOMDP hides the running fluents behind a noisy
// observation channel.
func DefaultMachinesPOMDP() MachinesConfig {
	cfg := DefaultMachines()
	cfg.Name = "machines-pomdp"
	cfg.PartiallyObserved = true
	cfg.ObservationNoise = 0.1
	return cfg
}

// Register adds the bundled machine instances to the model registry.
func Register() {
	sim.RegisterModel("machines", func() (sim.Model, error) {
		return NewMachines(DefaultMachines())
	})
	sim.RegisterModel("machines-pomdp", func() (sim.Model, error) {
		return NewMachines(DefaultMachinesPOMDP())
	})
}

// Machines implements sim.Model for MachinesConfig.
type Machines struct {
	cfg   MachinesConfig
	inst  sim.Instance
	decls []sim.VarDecl

	runningVar map[string]int
	obsVar     map[string]int
	rebootVar  map[string]int
}

type machinesState struct {
	model   *Machines
	running []bool
	// obs holds the observation channel; values persist across epochs
	// until overwritten and are cleared only by a whole-trial reset.
	obs     []any
	upCount any
}

var _ sim.Model = &Machines{}
var _ sim.ActionEnumerator = &machinesState{}

func NewMachines(cfg MachinesConfig) (*Machines, error) {
	if cfg.Machines < 1 {
		return nil, fmt.Errorf("machines domain: need at least one machine, got %d", cfg.Machines)
	}
	if cfg.Discount <= 0 || cfg.Discount > 1 {
		return nil, fmt.Errorf("machines domain: discount %g outside (0,1]", cfg.Discount)
	}

	m := &Machines{
		cfg: cfg,
		inst: sim.Instance{
			Name:              cfg.Name,
			Domain:            "machines",
			Horizon:           cfg.Horizon,
			Discount:          cfg.Discount,
			PartiallyObserved: cfg.PartiallyObserved,
			Terminates:        cfg.Terminates,
		},
		runningVar: make(map[string]int),
		obsVar:     make(map[string]int),
		rebootVar:  make(map[string]int),
	}

	for i := 0; i < cfg.Machines; i++ {
		running := fmt.Sprintf("running(m%d)", i+1)
		m.runningVar[running] = i
		m.decls = append(m.decls, sim.VarDecl{Name: running, Category: sim.CategoryState})

		if cfg.PartiallyObserved {
			obs := fmt.Sprintf("running-obs(m%d)", i+1)
			m.obsVar[obs] = i
			m.decls = append(m.decls, sim.VarDecl{Name: obs, Category: sim.CategoryObservation})
		}

		reboot := fmt.Sprintf("reboot(m%d)", i+1)
		m.rebootVar[reboot] = i
		m.decls = append(m.decls, sim.VarDecl{Name: reboot, Category: sim.CategoryAction})

		m.decls = append(m.decls, sim.VarDecl{
			Name:     fmt.Sprintf("CONNECTED(m%d,m%d)", i+1, (i+1)%cfg.Machines+1),
			Category: sim.CategoryConstant,
		})
	}
	m.decls = append(m.decls, sim.VarDecl{Name: upCountVar, Category: sim.CategoryDerived})

	return m, nil
}

func (m *Machines) Instance() sim.Instance { return m.inst }

func (m *Machines) Reset() (sim.State, error) {
	s := &machinesState{
		model:   m,
		running: make([]bool, m.cfg.Machines),
		obs:     make([]any, m.cfg.Machines),
	}
	for i := range s.running {
		s.running[i] = true
	}
	return s, nil
}

func (m *Machines) state(state sim.State) (*machinesState, error) {
	s, ok := state.(*machinesState)
	if !ok || s.model != m {
		return nil, fmt.Errorf("state does not belong to instance %q", m.inst.Name)
	}
	return s, nil
}

func (m *Machines) CheckInvariants(state sim.State) error {
	s, err := m.state(state)
	if err != nil {
		return err
	}
	if len(s.running) != m.cfg.Machines || len(s.obs) != m.cfg.Machines {
		return fmt.Errorf("fluent count drifted from %d machines", m.cfg.Machines)
	}
	return nil
}

// CheckActionLegality enforces the domain's single precondition: at most
// one machine may be rebooted per epoch, and every assignment must bind a
// known reboot fluent to a boolean.
func (m *Machines) CheckActionLegality(state sim.State, actions sim.ActionSet) error {
	if _, err := m.state(state); err != nil {
		return err
	}
	reboots := 0
	for _, a := range actions {
		if _, ok := m.rebootVar[a.Variable]; !ok {
			return fmt.Errorf("%q is not an action fluent", a.Variable)
		}
		v, ok := a.Value.(bool)
		if !ok {
			return fmt.Errorf("%q assigned non-boolean value %v", a.Variable, a.Value)
		}
		if v {
			reboots++
		}
	}
	if reboots > 1 {
		return fmt.Errorf("%d machines rebooted in one epoch, precondition allows at most 1", reboots)
	}
	return nil
}

func (m *Machines) SampleNextState(state sim.State, actions sim.ActionSet, src *rand.Rand) (sim.State, error) {
	s, err := m.state(state)
	if err != nil {
		return nil, err
	}

	rebooted := make([]bool, m.cfg.Machines)
	for _, a := range actions {
		if v, ok := a.Value.(bool); ok && v {
			rebooted[m.rebootVar[a.Variable]] = true
		}
	}

	next := &machinesState{
		model:   m,
		running: make([]bool, m.cfg.Machines),
		obs:     make([]any, m.cfg.Machines),
	}
	copy(next.obs, s.obs)

	upCount := 0
	for i := 0; i < m.cfg.Machines; i++ {
		switch {
		case rebooted[i]:
			next.running[i] = src.Float64() < m.cfg.RebootSuccess
		case s.running[i]:
			pUp := m.cfg.BaseUp + m.cfg.NeighborBonus*s.fractionOfNeighborsUp(i)
			next.running[i] = src.Float64() < pUp
		default:
			next.running[i] = false
		}
		if next.running[i] {
			upCount++
		}
	}
	next.upCount = upCount

	if m.cfg.PartiallyObserved {
		for i := 0; i < m.cfg.Machines; i++ {
			observed := next.running[i]
			if src.Float64() < m.cfg.ObservationNoise {
				observed = !observed
			}
			next.obs[i] = observed
		}
	}

	return next, nil
}

// Advance commits the sampled state. The observation channel travels with
// the state and is never cleared mid-episode.
func (m *Machines) Advance(state sim.State) (sim.State, error) {
	s, err := m.state(state)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Machines) EvaluateReward(state sim.State) (float64, error) {
	s, err := m.state(state)
	if err != nil {
		return 0, err
	}
	running := 0
	for _, up := range s.running {
		if up {
			running++
		}
	}
	return float64(running), nil
}

func (m *Machines) CheckTermination(state sim.State) (bool, error) {
	s, err := m.state(state)
	if err != nil {
		return false, err
	}
	if !m.cfg.Terminates {
		return false, nil
	}
	for _, up := range s.running {
		if up {
			return false, nil
		}
	}
	return true, nil
}

func (m *Machines) ObservableColumns(state sim.State) []sim.Column {
	s, err := m.state(state)
	if err != nil {
		return nil
	}
	return sim.SelectObservable(m.decls, s.value, m.inst.PartiallyObserved)
}

func (s *machinesState) value(name string) any {
	if i, ok := s.model.runningVar[name]; ok {
		return s.running[i]
	}
	if i, ok := s.model.obsVar[name]; ok {
		return s.obs[i]
	}
	if name == upCountVar {
		return s.upCount
	}
	return nil
}

// LegalActions enumerates the candidate action sets: the noop and one
// single-machine reboot per machine.
func (s *machinesState) LegalActions() []sim.ActionSet {
	candidates := make([]sim.ActionSet, 0, s.model.cfg.Machines+1)
	candidates = append(candidates, sim.ActionSet{})
	for i := 0; i < s.model.cfg.Machines; i++ {
		candidates = append(candidates, sim.ActionSet{{
			Variable: fmt.Sprintf("reboot(m%d)", i+1),
			Value:    true,
		}})
	}
	return candidates
}

func (s *machinesState) fractionOfNeighborsUp(i int) float64 {
	n := s.model.cfg.Machines
	if n == 1 {
		return 1.0
	}
	left := (i - 1 + n) % n
	right := (i + 1) % n
	up := 0
	total := 2
	if left == right {
		total = 1
	}
	if s.running[left] {
		up++
	}
	if total == 2 && s.running[right] {
		up++
	}
	return float64(up) / float64(total)
}
