// Package viz bundles the episode-end visualizer hooks. Rendering of
// domain states is outside the engine's scope; the display visualizer
// reports episode outcomes through the structured log instead.
package viz

import (
	"github.com/sirupsen/logrus"

	"github.com/minimum-LaytonC/rddlsim/sim"
)

// Noop discards the episode-end notification.
type Noop struct{}

func NewNoop() sim.Visualizer { return &Noop{} }

func (n *Noop) EpisodeEnd(trial *sim.Trial) {}

// Display logs the episode outcome when it ends.
type Display struct{}

func NewDisplay() sim.Visualizer { return &Display{} }

func (d *Display) EpisodeEnd(trial *sim.Trial) {
	logrus.WithFields(logrus.Fields{
		"trial": trial.Index,
		"steps": trial.Len(),
	}).Infof("episode ended, return %g", trial.Return)
}
