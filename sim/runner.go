package sim

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// RunTrial executes exactly one episode of the model under the policy and
// returns its trajectory and accumulated discounted return.
//
// Each epoch runs strictly in this order: state invariants, observation
// view, action selection, action legality, next-state sampling, reward
// evaluation, trajectory append, advance, termination check. Rewards are
// evaluated on the sampled state before it is advanced; actions never see
// state beyond the current epoch.
//
// Invariant violations and illegal actions abandon the trial with a typed
// error carrying trial and epoch indices. The visualizer's episode-end
// hook runs on every exit path.
func RunTrial(model Model, policy Policy, visualizer Visualizer, src *rand.Rand, trialIndex int) (trial *Trial, err error) {
	inst := model.Instance()
	trial = NewTrial(trialIndex)

	if visualizer != nil {
		defer func() { visualizer.EpisodeEnd(trial) }()
	}

	state, err := model.Reset()
	if err != nil {
		return trial, fmt.Errorf("trial %d: reset: %w", trialIndex, err)
	}

	discount := 1.0
	for t := 0; inst.Horizon <= 0 || t < inst.Horizon; t++ {
		if ierr := model.CheckInvariants(state); ierr != nil {
			return trial, &InvariantError{Trial: trialIndex, Epoch: t, Err: ierr}
		}

		// In a partially observed process the initial state has not yet
		// produced observations, so the policy gets none on epoch 0.
		var observation State
		if !(inst.PartiallyObserved && t == 0) {
			observation = state
		}

		actions, perr := policy.SelectActions(observation)
		if perr != nil {
			return trial, fmt.Errorf("trial %d epoch %d: policy: %w", trialIndex, t, perr)
		}

		if aerr := model.CheckActionLegality(state, actions); aerr != nil {
			return trial, &IllegalActionError{Trial: trialIndex, Epoch: t, Err: aerr}
		}

		next, serr := model.SampleNextState(state, actions, src)
		if serr != nil {
			return trial, fmt.Errorf("trial %d epoch %d: sample next state: %w", trialIndex, t, serr)
		}

		reward, rerr := model.EvaluateReward(next)
		if rerr != nil {
			return trial, fmt.Errorf("trial %d epoch %d: evaluate reward: %w", trialIndex, t, rerr)
		}

		trial.Steps = append(trial.Steps, Step{
			Columns: model.ObservableColumns(next),
			Actions: actions,
			Reward:  reward,
		})
		trial.Return += discount * reward
		discount *= inst.Discount

		state, err = model.Advance(next)
		if err != nil {
			return trial, fmt.Errorf("trial %d epoch %d: advance: %w", trialIndex, t, err)
		}

		if inst.Terminates {
			done, terr := model.CheckTermination(state)
			if terr != nil {
				return trial, fmt.Errorf("trial %d epoch %d: termination check: %w", trialIndex, t, terr)
			}
			if done {
				break
			}
		}
	}

	return trial, nil
}
