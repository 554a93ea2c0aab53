// Package engines wires the concrete scheduling engines (CP, GA) into a
// scheduler.Registry. It is the one place allowed to import both engine
// packages, since scheduler itself cannot depend on either without creating
// an import cycle.
package engines

import (
	"github.com/pintowar/bellum-sub001/internal/cpengine"
	"github.com/pintowar/bellum-sub001/internal/gaengine"
	"github.com/pintowar/bellum-sub001/internal/scheduler"
)

// DefaultRegistry returns a Registry with the CP ("choco") and GA
// ("jenetics") engines registered, each wrapped in its own scheduler.Guarded
// instance and logging through observers. "timefold" is deliberately not
// registered; no such engine exists in this repo.
func DefaultRegistry(observers ...scheduler.RunObserver) *scheduler.Registry {
	return scheduler.NewRegistry(
		scheduler.Descriptor{
			Name:    "choco",
			Factory: func() *scheduler.Guarded { return scheduler.NewGuarded(cpengine.New(), observers...) },
		},
		scheduler.Descriptor{
			Name:    "jenetics",
			Factory: func() *scheduler.Guarded { return scheduler.NewGuarded(gaengine.New(), observers...) },
		},
	)
}
