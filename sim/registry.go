package sim

import (
	"fmt"
	"sort"
)

// Registries map string identifiers to factories so policies, visualizers
// and model instances can be chosen by name at startup without any dynamic
// loading. Unknown names are configuration errors, surfaced before any
// trial runs.

var (
	modelFactories      = map[string]ModelFactory{}
	policyFactories     = map[string]PolicyFactory{}
	visualizerFactories = map[string]VisualizerFactory{}
)

func RegisterModel(name string, f ModelFactory) {
	if _, ok := modelFactories[name]; ok {
		panic(fmt.Sprintf("model %q registered twice", name))
	}
	modelFactories[name] = f
}

func RegisterPolicy(name string, f PolicyFactory) {
	if _, ok := policyFactories[name]; ok {
		panic(fmt.Sprintf("policy %q registered twice", name))
	}
	policyFactories[name] = f
}

func RegisterVisualizer(name string, f VisualizerFactory) {
	if _, ok := visualizerFactories[name]; ok {
		panic(fmt.Sprintf("visualizer %q registered twice", name))
	}
	visualizerFactories[name] = f
}

// NewModel builds the decision model registered under name.
func NewModel(name string) (Model, error) {
	f, ok := modelFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown instance %q, choices are %v", name, RegisteredModels())
	}
	return f()
}

// LookupPolicy returns the policy factory registered under name.
func LookupPolicy(name string) (PolicyFactory, error) {
	f, ok := policyFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q, choices are %v", name, RegisteredPolicies())
	}
	return f, nil
}

// LookupVisualizer returns the visualizer factory registered under name.
func LookupVisualizer(name string) (VisualizerFactory, error) {
	f, ok := visualizerFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown visualizer %q, choices are %v", name, RegisteredVisualizers())
	}
	return f, nil
}

func RegisteredModels() []string      { return sortedKeys(modelFactories) }
func RegisteredPolicies() []string    { return sortedKeys(policyFactories) }
func RegisteredVisualizers() []string { return sortedKeys(visualizerFactories) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
