package domains

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/minimum-LaytonC/rddlsim/policies"
	"github.com/minimum-LaytonC/rddlsim/sim"
)

func TestMachinesConfigValidation(t *testing.T) {
	cfg := DefaultMachines()
	cfg.Machines = 0
	_, err := NewMachines(cfg)
	assert.Error(t, err)

	cfg = DefaultMachines()
	cfg.Discount = 1.5
	_, err = NewMachines(cfg)
	assert.Error(t, err)

	cfg.Discount = 0
	_, err = NewMachines(cfg)
	assert.Error(t, err)
}

func TestMachinesRewardCountsRunning(t *testing.T) {
	model, err := NewMachines(DefaultMachines())
	require.NoError(t, err)

	state, err := model.Reset()
	require.NoError(t, err)

	reward, err := model.EvaluateReward(state)
	require.NoError(t, err)
	assert.Equal(t, 3.0, reward, "all machines start up")
}

func TestMachinesActionLegality(t *testing.T) {
	model, err := NewMachines(DefaultMachines())
	require.NoError(t, err)
	state, err := model.Reset()
	require.NoError(t, err)

	assert.NoError(t, model.CheckActionLegality(state, sim.ActionSet{}))
	assert.NoError(t, model.CheckActionLegality(state, sim.ActionSet{
		{Variable: "reboot(m1)", Value: true},
	}))

	err = model.CheckActionLegality(state, sim.ActionSet{
		{Variable: "reboot(m1)", Value: true},
		{Variable: "reboot(m2)", Value: true},
	})
	assert.Error(t, err, "at most one reboot per epoch")

	err = model.CheckActionLegality(state, sim.ActionSet{
		{Variable: "running(m1)", Value: true},
	})
	assert.Error(t, err, "state fluents are not action fluents")

	err = model.CheckActionLegality(state, sim.ActionSet{
		{Variable: "reboot(m1)", Value: 3},
	})
	assert.Error(t, err, "reboot fluents are boolean")
}

func TestMachinesHiddenStateNeverLogged(t *testing.T) {
	model, err := NewMachines(DefaultMachinesPOMDP())
	require.NoError(t, err)

	src := rand.New(rand.NewSource(5))
	state, err := model.Reset()
	require.NoError(t, err)
	next, err := model.SampleNextState(state, sim.ActionSet{}, src)
	require.NoError(t, err)

	columns := model.ObservableColumns(next)
	require.NotEmpty(t, columns)
	sawObservation := false
	for _, c := range columns {
		assert.False(t, strings.HasPrefix(c.Name, "running("),
			"hidden state column %q leaked into the log", c.Name)
		assert.False(t, strings.HasPrefix(c.Name, "CONNECTED"),
			"constant column %q carries no trajectory information", c.Name)
		if strings.HasPrefix(c.Name, "running-obs(") {
			sawObservation = true
			assert.NotNil(t, c.Value)
		}
	}
	assert.True(t, sawObservation)
}

func TestMachinesFullyObservedColumns(t *testing.T) {
	model, err := NewMachines(DefaultMachines())
	require.NoError(t, err)

	src := rand.New(rand.NewSource(5))
	state, err := model.Reset()
	require.NoError(t, err)
	next, err := model.SampleNextState(state, sim.ActionSet{}, src)
	require.NoError(t, err)

	names := make([]string, 0)
	for _, c := range model.ObservableColumns(next) {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"running(m1)", "running(m2)", "running(m3)", "up-count"}, names,
		"state and derived fluents in stable declaration order")
}

func TestMachinesRebootRevivesMachine(t *testing.T) {
	cfg := DefaultMachines()
	cfg.BaseUp = 0
	cfg.NeighborBonus = 0
	cfg.RebootSuccess = 1
	model, err := NewMachines(cfg)
	require.NoError(t, err)

	src := rand.New(rand.NewSource(1))
	state, err := model.Reset()
	require.NoError(t, err)

	// With pUp=0, everything not rebooted goes down.
	next, err := model.SampleNextState(state, sim.ActionSet{{Variable: "reboot(m2)", Value: true}}, src)
	require.NoError(t, err)

	reward, err := model.EvaluateReward(next)
	require.NoError(t, err)
	assert.Equal(t, 1.0, reward, "only the rebooted machine survives")
}

func TestMachinesTerminatesWhenAllDown(t *testing.T) {
	cfg := DefaultMachines()
	cfg.BaseUp = 0
	cfg.NeighborBonus = 0
	cfg.Horizon = 50
	model, err := NewMachines(cfg)
	require.NoError(t, err)

	noop, err := policies.NewNoop(cfg.Name, 1)
	require.NoError(t, err)

	trial, err := sim.RunTrial(model, noop, nil, sim.NewSeeder(1).SourceFor(1), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, trial.Len(), "all machines down after one epoch ends the episode early")
	assert.Equal(t, 0.0, trial.Return)
}

func TestMachinesTrialsReproducible(t *testing.T) {
	run := func() *sim.Trial {
		model, err := NewMachines(DefaultMachinesPOMDP())
		require.NoError(t, err)
		policy, err := policies.NewRandom(model.Instance().Name, sim.NewSeeder(42).PolicySeed(1))
		require.NoError(t, err)
		trial, err := sim.RunTrial(model, policy, nil, sim.NewSeeder(42).SourceFor(1), 1)
		require.NoError(t, err)
		return trial
	}

	first := run()
	second := run()
	assert.Equal(t, first.Return, second.Return)
	assert.Equal(t, first.Steps, second.Steps,
		"same base seed, instance and policy sequence reproduce the trajectory")
}

func TestMachinesObservationHistoryPersists(t *testing.T) {
	model, err := NewMachines(DefaultMachinesPOMDP())
	require.NoError(t, err)

	src := rand.New(rand.NewSource(9))
	state, err := model.Reset()
	require.NoError(t, err)

	next, err := model.SampleNextState(state, sim.ActionSet{}, src)
	require.NoError(t, err)
	committed, err := model.Advance(next)
	require.NoError(t, err)

	for _, c := range model.ObservableColumns(committed) {
		if strings.HasPrefix(c.Name, "running-obs(") {
			assert.NotNil(t, c.Value, "observations survive the advance, only Reset clears them")
		}
	}

	fresh, err := model.Reset()
	require.NoError(t, err)
	for _, c := range model.ObservableColumns(fresh) {
		if strings.HasPrefix(c.Name, "running-obs(") {
			assert.Nil(t, c.Value, "a whole-trial reset clears the observation history")
		}
	}
}
