package domain

import (
	"fmt"
	"slices"

	"go.trai.ch/zerr"
)

// Order returns the paths of modules in bundle order.
//
// The in-degree of a module is the number of discovered modules that import it,
// so modules nothing depends on (the entry) come first and their dependencies
// follow. Dependencies outside the discovered set are ignored. Modules of equal
// rank are seeded in path order so the result does not depend on map iteration.
func Order(modules map[string]*ParsedModule) ([]string, error) {
	inDegree := make(map[string]int, len(modules))
	for path := range modules {
		inDegree[path] = 0
	}
	for _, m := range modules {
		for _, dep := range m.Resolved {
			if _, ok := modules[dep]; ok {
				inDegree[dep]++
			}
		}
	}

	queue := make([]string, 0, len(modules))
	for path, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, path)
		}
	}
	slices.Sort(queue)

	sorted := make([]string, 0, len(modules))
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		sorted = append(sorted, path)

		for _, dep := range modules[path].Resolved {
			if _, ok := modules[dep]; !ok {
				continue
			}
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(sorted) != len(modules) {
		err := zerr.Wrap(ErrCycleDetected, fmt.Sprintf("ordered %d of %d modules", len(sorted), len(modules)))
		err = zerr.With(err, "sorted", len(sorted))
		return nil, zerr.With(err, "total", len(modules))
	}

	return sorted, nil
}
