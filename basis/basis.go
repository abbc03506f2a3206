// Package basis provides Gaussian basis-set data and the expansion of
// a molecule into normalized contracted Cartesian basis functions.
package basis

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Shell is one contracted shell of a basis set: an angular momentum
// and the primitive exponents with their contraction coefficients.
type Shell struct {
	L     int
	Exps  []float64
	Coefs []float64
}

// registry maps a lower-case basis-set name to per-element shell
// lists. It is built lazily on first use and never mutated afterwards
// except through Register, so concurrent lookups are safe.
var (
	registryOnce sync.Once
	registryMu   sync.RWMutex
	registry     map[string]map[int][]Shell
)

func initRegistry() {
	registryOnce.Do(func() {
		registry = map[string]map[int][]Shell{
			"sto-3g": sto3g,
			"6-31g":  b631g,
		}
	})
}

// Register adds a basis set under the given name, replacing any
// existing entry. The shells map is keyed by atomic number.
func Register(name string, shells map[int][]Shell) {
	initRegistry()
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = shells
}

// Names returns the names of all registered basis sets, sorted.
func Names() []string {
	initRegistry()
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the per-element shells of a named basis set.
func Lookup(name string) (map[int][]Shell, error) {
	initRegistry()
	registryMu.RLock()
	defer registryMu.RUnlock()
	shells, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown basis set %q (have: %s)",
			name, strings.Join(Names(), ", "))
	}
	return shells, nil
}
