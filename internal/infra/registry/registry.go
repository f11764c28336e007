// Package registry turns an AppConfig into registered components.
package registry

import (
	"fmt"
	"sort"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/config"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/core"
)

// BuilderFunc returns (enabled, component, error). enabled=false skips registration.
type BuilderFunc func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error)

// Builder holds metadata.
type Builder struct {
	Name string
	Fn   BuilderFunc
	// builders that must run first; unknown names are ignored
	Deps []string
}

var builders []*Builder

func findBuilder(name string) *Builder {
	for _, b := range builders {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Register adds a component builder. deps only order the builders; runtime
// start order comes from each component's Dependencies.
func Register(name string, fn BuilderFunc, deps ...string) {
	if name == "" {
		panic("registry: empty name in Register")
	}
	if findBuilder(name) != nil {
		panic("registry: duplicate builder name " + name)
	}
	builders = append(builders, &Builder{Name: name, Fn: fn, Deps: deps})
}

// BuildAndRegisterAll runs every builder in dependency order and registers the
// enabled components in c.
func BuildAndRegisterAll(cfg *config.AppConfig, c *core.Container) error {
	ordered, err := topoSortBuilders(builders)
	if err != nil {
		return err
	}
	for _, b := range ordered {
		enabled, comp, err := b.Fn(cfg, c)
		if err != nil {
			return fmt.Errorf("build %s failed: %w", b.Name, err)
		}
		if !enabled || comp == nil {
			continue
		}
		if err := c.Register(b.Name, comp); err != nil {
			return fmt.Errorf("register %s failed: %w", b.Name, err)
		}
	}
	return nil
}

// dependOnIfRegistered adds the named components to comp's start order when
// they were built.
func dependOnIfRegistered(c *core.Container, comp interface{ AddDependencies(...string) }, names ...string) {
	for _, n := range names {
		if c.Has(n) {
			comp.AddDependencies(n)
		}
	}
}

func topoSortBuilders(list []*Builder) ([]*Builder, error) {
	nameMap := map[string]*Builder{}
	inDeg := map[string]int{}
	adj := map[string][]string{}
	for _, b := range list {
		nameMap[b.Name] = b
		inDeg[b.Name] = 0
	}
	for _, b := range list {
		for _, d := range b.Deps {
			if _, ok := nameMap[d]; !ok {
				continue
			}
			adj[d] = append(adj[d], b.Name)
			inDeg[b.Name]++
		}
	}
	var zero []string
	for n, d := range inDeg {
		if d == 0 {
			zero = append(zero, n)
		}
	}
	sort.Strings(zero)
	var ordered []*Builder
	for len(zero) > 0 {
		n := zero[0]
		zero = zero[1:]
		ordered = append(ordered, nameMap[n])
		for _, nxt := range adj[n] {
			inDeg[nxt]--
			if inDeg[nxt] == 0 {
				zero = append(zero, nxt)
			}
		}
		sort.Strings(zero)
	}
	if len(ordered) != len(nameMap) {
		var cyc []string
		for n, d := range inDeg {
			if d > 0 {
				cyc = append(cyc, n)
			}
		}
		sort.Strings(cyc)
		return nil, fmt.Errorf("registry: cyclic builder deps: %v", cyc)
	}
	return ordered, nil
}
