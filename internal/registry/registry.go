// Package registry provides a global registry of wall-layout generators.
// Generators register themselves in init() functions, allowing the CLI and
// the editor to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/gridpath/internal/pathfind"
)

// Params controls a single generation run.
type Params struct {
	Seed    int64            // RNG seed; equal seeds give equal layouts
	Density float64          // 0.0 - 1.0, used by density-based generators
	Keep    []pathfind.Coord // Cells forced open afterwards (start, goal)
}

// Generator fills a grid with walls.
type Generator interface {
	// ID returns a unique identifier (e.g., "maze"), used by CLI flags and
	// configuration.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Generate replaces every wall of g. It must be deterministic for a given
	// rng state and grid size.
	Generate(g *pathfind.Grid, rng *rand.Rand, p Params)
}

// GeneratorInfo contains metadata about a registered generator.
type GeneratorInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new generator instance.
type Factory func() Generator

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a generator factory to the registry.
// Panics if a generator with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: generator %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered generators, sorted by ID.
func List() []GeneratorInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GeneratorInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GeneratorInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a generator by its ID.
func Create(id string) (Generator, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown generator %q", id)
	}
	return f(), nil
}

// Exists checks if a generator with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Apply runs the named generator on g with a fresh RNG seeded from p.Seed and
// then opens every cell listed in p.Keep.
func Apply(id string, g *pathfind.Grid, p Params) error {
	gen, err := Create(id)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(p.Seed))
	gen.Generate(g, rng, p)

	for _, c := range p.Keep {
		if err := g.SetWall(c.X, c.Y, false); err != nil {
			return fmt.Errorf("registry: keep %v: %w", c, err)
		}
	}
	return nil
}
