package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// BatchConfig configures one batch of independent trials.
type BatchConfig struct {
	Trials int
	Seeder *Seeder
	Logger *TrajectoryLogger

	NewPolicy     PolicyFactory
	NewVisualizer VisualizerFactory

	// ConsecutiveFailuresAbort stops the batch after this many failed
	// trials in a row. Zero means the default of 10.
	ConsecutiveFailuresAbort int
}

// Summary aggregates the outcomes of a batch.
type Summary struct {
	Trials    int
	Completed int
	Failed    int

	// Returns holds the accumulated discounted return of each completed
	// trial, in execution order.
	Returns []float64

	MeanReturn float64
	StdDev     float64
	StdErr     float64
}

// RunBatch executes cfg.Trials sequential trials against one model
// instance, constructing a fresh policy and visualizer per trial so no
// per-trial state leaks across trials. Completed trials are recorded to
// the trajectory logger, which is flushed and closed on every exit path,
// so a batch abort never drops already-completed trials.
//
// Invariant violations and illegal actions fail their trial but not the
// batch; the batch aborts only after too many consecutive failures.
func RunBatch(model Model, cfg BatchConfig) (*Summary, error) {
	if cfg.Trials < 1 {
		cfg.Trials = 1
	}
	if cfg.Seeder == nil {
		cfg.Seeder = NewTimeSeeder()
	}
	if cfg.NewPolicy == nil {
		return nil, fmt.Errorf("batch config: no policy factory")
	}
	if cfg.ConsecutiveFailuresAbort <= 0 {
		cfg.ConsecutiveFailuresAbort = 10
	}

	if cfg.Logger != nil {
		defer func() {
			if cerr := cfg.Logger.Close(); cerr != nil {
				logrus.Warnf("closing trajectory logger: %v", cerr)
			}
		}()
	}

	inst := model.Instance()
	summary := &Summary{Returns: make([]float64, 0, cfg.Trials)}
	consecutiveFailures := 0

	for trial := 1; trial <= cfg.Trials; trial++ {
		summary.Trials++

		policy, err := cfg.NewPolicy(inst.Name, cfg.Seeder.PolicySeed(trial))
		if err != nil {
			return summary, fmt.Errorf("trial %d: construct policy: %w", trial, err)
		}
		var visualizer Visualizer
		if cfg.NewVisualizer != nil {
			visualizer = cfg.NewVisualizer()
		}

		result, err := RunTrial(model, policy, visualizer, cfg.Seeder.SourceFor(trial), trial)
		if err != nil {
			summary.Failed++
			consecutiveFailures++
			logrus.WithFields(logrus.Fields{
				"instance": inst.Name,
				"trial":    trial,
			}).Warnf("trial abandoned: %v", err)
			if consecutiveFailures >= cfg.ConsecutiveFailuresAbort {
				finishSummary(summary)
				return summary, fmt.Errorf("aborting batch after %d consecutive failed trials: %w",
					consecutiveFailures, err)
			}
			continue
		}
		consecutiveFailures = 0
		summary.Completed++
		summary.Returns = append(summary.Returns, result.Return)

		if cfg.Logger != nil {
			if lerr := cfg.Logger.Record(result); lerr != nil {
				// Logging failures never abort a simulation batch.
				logrus.Warnf("recording trial %d: %v", trial, lerr)
			}
		}

		logrus.WithFields(logrus.Fields{
			"instance": inst.Name,
			"trial":    trial,
			"steps":    result.Len(),
		}).Infof("accumulated return: %g", result.Return)
	}

	finishSummary(summary)
	return summary, nil
}

func finishSummary(s *Summary) {
	if len(s.Returns) == 0 {
		return
	}
	s.MeanReturn = stat.Mean(s.Returns, nil)
	if len(s.Returns) > 1 {
		s.StdDev = stat.StdDev(s.Returns, nil)
		s.StdErr = s.StdDev / math.Sqrt(float64(len(s.Returns)))
	}
}
