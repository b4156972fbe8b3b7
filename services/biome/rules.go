package biome

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/hexcrawl/worldgen/internal/logging"
	"github.com/hexcrawl/worldgen/world"
)

// Relation says how two biomes may sit next to each other.
type Relation string

const (
	// RelationCompatible pairs coexist untouched. Unknown pairs default here.
	RelationCompatible Relation = "compatible"
	// RelationIncompatible pairs never touch; the later cell in scan order
	// is rewritten to the rule's replacement.
	RelationIncompatible Relation = "incompatible"
	// RelationTransitionNeeded pairs need the rule's transition biome
	// between them.
	RelationTransitionNeeded Relation = "transition_needed"
)

// Rule describes one biome pair. Pairs are unordered: a rule for (a, b)
// also governs (b, a).
type Rule struct {
	A        world.Biome `json:"a"`
	B        world.Biome `json:"b"`
	Relation Relation    `json:"relation"`
	// Replacement rewrites the offending cell of an incompatible pair.
	Replacement world.Biome `json:"replacement,omitempty"`
	// Transition is stamped between a transition_needed pair.
	Transition world.Biome `json:"transition,omitempty"`
	// Width is how many cells of transition to stamp, minimum 1.
	Width int `json:"width,omitempty"`
}

type pairKey struct {
	lo, hi world.Biome
}

func keyFor(a, b world.Biome) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// RuleSet is the full adjacency relation. It is immutable after
// construction and safe for concurrent readers.
type RuleSet struct {
	rules  map[pairKey]Rule
	logger *log.Logger
}

// maxResolvePasses bounds fixed-point iteration so a pathological custom
// table cannot loop forever.
const maxResolvePasses = 8

// NewRuleSet builds a rule set from explicit rules. Rules naming unknown
// biomes or relations are skipped with a warning; later rules for the same
// pair win.
func NewRuleSet(rules []Rule) *RuleSet {
	logger := logging.WithFields("component", "biome-rules")
	rs := &RuleSet{
		rules:  make(map[pairKey]Rule, len(rules)),
		logger: logger,
	}
	for _, r := range rules {
		if err := validateRule(r); err != nil {
			logger.Warn("Skipping invalid adjacency rule",
				"a", r.A,
				"b", r.B,
				"relation", r.Relation,
				"reason", err)
			continue
		}
		if r.Width < 1 {
			r.Width = 1
		}
		rs.rules[keyFor(r.A, r.B)] = r
	}
	return rs
}

func validateRule(r Rule) error {
	if !r.A.IsValid() || !r.B.IsValid() {
		return fmt.Errorf("unknown biome in pair (%q, %q)", r.A, r.B)
	}
	switch r.Relation {
	case RelationCompatible:
		return nil
	case RelationIncompatible:
		if !r.Replacement.IsValid() {
			return fmt.Errorf("incompatible pair needs a valid replacement, got %q", r.Replacement)
		}
	case RelationTransitionNeeded:
		if !r.Transition.IsValid() {
			return fmt.Errorf("transition pair needs a valid transition biome, got %q", r.Transition)
		}
	default:
		return fmt.Errorf("unknown relation %q", r.Relation)
	}
	return nil
}

// DefaultRuleSet returns the compiled-in adjacency table.
//
// Replacements and transitions are chosen so every rewrite lands in a biome
// compatible with both originals, which is what lets Resolve reach a fixed
// point.
func DefaultRuleSet() *RuleSet {
	return NewRuleSet([]Rule{
		// Pairs that never share an edge.
		{A: world.BiomeDesert, B: world.BiomeTundra, Relation: RelationIncompatible, Replacement: world.BiomePlains},
		{A: world.BiomeDesert, B: world.BiomeTaiga, Relation: RelationIncompatible, Replacement: world.BiomePlains},
		{A: world.BiomeDesert, B: world.BiomeSwamp, Relation: RelationIncompatible, Replacement: world.BiomeSavanna},
		{A: world.BiomeJungle, B: world.BiomeTundra, Relation: RelationIncompatible, Replacement: world.BiomeForest},
		{A: world.BiomeJungle, B: world.BiomeTaiga, Relation: RelationIncompatible, Replacement: world.BiomeForest},

		// Pairs that need a buffer biome between them.
		{A: world.BiomeDesert, B: world.BiomeJungle, Relation: RelationTransitionNeeded, Transition: world.BiomeSavanna, Width: 1},
		{A: world.BiomeDesert, B: world.BiomeForest, Relation: RelationTransitionNeeded, Transition: world.BiomeSavanna, Width: 1},
		{A: world.BiomeMountains, B: world.BiomePlains, Relation: RelationTransitionNeeded, Transition: world.BiomeHills, Width: 1},
		{A: world.BiomeMountains, B: world.BiomeForest, Relation: RelationTransitionNeeded, Transition: world.BiomeHills, Width: 1},
		{A: world.BiomeAlpine, B: world.BiomePlains, Relation: RelationTransitionNeeded, Transition: world.BiomeMountains, Width: 1},
		{A: world.BiomeAlpine, B: world.BiomeForest, Relation: RelationTransitionNeeded, Transition: world.BiomeMountains, Width: 1},
		{A: world.BiomeAlpine, B: world.BiomeJungle, Relation: RelationTransitionNeeded, Transition: world.BiomeMountains, Width: 1},
		{A: world.BiomeAlpine, B: world.BiomeDesert, Relation: RelationTransitionNeeded, Transition: world.BiomeMountains, Width: 1},
	})
}

// ruleFile is the on-disk JSON shape.
type ruleFile struct {
	Rules []Rule `json:"rules"`
}

// LoadRuleSet reads an adjacency table from a JSON file. Any failure falls
// back to the compiled-in defaults with a warning; a missing table is never
// fatal.
func LoadRuleSet(path string) *RuleSet {
	logger := logging.WithFields("component", "biome-rules")

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Could not read adjacency rules, using built-in table", "path", path, "error", err)
		return DefaultRuleSet()
	}

	var file ruleFile
	if err := json.Unmarshal(data, &file); err != nil {
		logger.Warn("Could not parse adjacency rules, using built-in table", "path", path, "error", err)
		return DefaultRuleSet()
	}
	if len(file.Rules) == 0 {
		logger.Warn("Adjacency rule file holds no rules, using built-in table", "path", path)
		return DefaultRuleSet()
	}

	logger.Info("Loaded adjacency rules", "path", path, "rules", len(file.Rules))
	return NewRuleSet(file.Rules)
}

// Relation reports how two biomes relate. Identical biomes and unlisted
// pairs are compatible.
func (rs *RuleSet) Relation(a, b world.Biome) Relation {
	if a == b {
		return RelationCompatible
	}
	if r, ok := rs.rules[keyFor(a, b)]; ok {
		return r.Relation
	}
	return RelationCompatible
}

// rule returns the stored rule for a pair when one exists.
func (rs *RuleSet) rule(a, b world.Biome) (Rule, bool) {
	r, ok := rs.rules[keyFor(a, b)]
	return r, ok
}

// Violation is one adjacency breach in a biome grid.
type Violation struct {
	At       world.Coordinate
	Neighbor world.Coordinate
	A        world.Biome
	B        world.Biome
	Relation Relation
}

// Resolve rewrites the grid in place until every horizontal and vertical
// neighbor pair satisfies the table, and returns how many cells changed.
// Resolution is deterministic: cells are scanned row-major and the later
// cell of a bad pair is the one rewritten. Running Resolve on its own
// output changes nothing.
func (rs *RuleSet) Resolve(grid [][]world.Biome) (int, error) {
	if err := validateBiomeGrid(grid); err != nil {
		return 0, err
	}

	height := len(grid)
	width := len(grid[0])
	totalChanged := 0

	for pass := 0; pass < maxResolvePasses; pass++ {
		changed := 0
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if x+1 < width {
					changed += rs.resolvePair(grid, x, y, x+1, y)
				}
				if y+1 < height {
					changed += rs.resolvePair(grid, x, y, x, y+1)
				}
			}
		}
		totalChanged += changed
		if changed == 0 {
			rs.logger.Debug("Adjacency resolution converged", "passes", pass+1, "cells_changed", totalChanged)
			return totalChanged, nil
		}
	}

	// A well-formed table converges in two or three passes; hitting the
	// budget means the custom table rewrites in circles. Keep the map as
	// is rather than failing the whole region.
	rs.logger.Warn("Adjacency resolution hit pass budget without converging",
		"passes", maxResolvePasses,
		"cells_changed", totalChanged,
		"remaining_violations", len(rs.Validate(grid)))
	return totalChanged, nil
}

// resolvePair fixes one neighbor pair, rewriting the later cell. Returns the
// number of cells changed.
func (rs *RuleSet) resolvePair(grid [][]world.Biome, x1, y1, x2, y2 int) int {
	a := grid[y1][x1]
	b := grid[y2][x2]
	if a == b {
		return 0
	}
	r, ok := rs.rule(a, b)
	if !ok {
		return 0
	}

	switch r.Relation {
	case RelationIncompatible:
		grid[y2][x2] = r.Replacement
		return 1

	case RelationTransitionNeeded:
		// Stamp the transition strip starting at the later cell and
		// continuing in the pair's direction.
		dx := x2 - x1
		dy := y2 - y1
		changed := 0
		for i := 0; i < r.Width; i++ {
			tx := x2 + dx*i
			ty := y2 + dy*i
			if ty < 0 || ty >= len(grid) || tx < 0 || tx >= len(grid[0]) {
				break
			}
			if grid[ty][tx] != r.Transition {
				grid[ty][tx] = r.Transition
				changed++
			}
		}
		return changed
	}
	return 0
}

// Validate reports every adjacency breach left in the grid. An empty result
// means the map satisfies the table.
func (rs *RuleSet) Validate(grid [][]world.Biome) []Violation {
	var out []Violation
	height := len(grid)
	if height == 0 {
		return out
	}
	width := len(grid[0])

	check := func(x1, y1, x2, y2 int) {
		a := grid[y1][x1]
		b := grid[y2][x2]
		rel := rs.Relation(a, b)
		if rel != RelationCompatible {
			out = append(out, Violation{
				At:       world.Coordinate{X: x1, Y: y1},
				Neighbor: world.Coordinate{X: x2, Y: y2},
				A:        a,
				B:        b,
				Relation: rel,
			})
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x+1 < width {
				check(x, y, x+1, y)
			}
			if y+1 < height {
				check(x, y, x, y+1)
			}
		}
	}
	return out
}

func validateBiomeGrid(grid [][]world.Biome) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return fmt.Errorf("empty biome grid: %w", world.ErrBadInput)
	}
	width := len(grid[0])
	for y := range grid {
		if len(grid[y]) != width {
			return fmt.Errorf("ragged biome grid at row %d: %w", y, world.ErrBadInput)
		}
		for x := range grid[y] {
			if !grid[y][x].IsValid() {
				return fmt.Errorf("unknown biome %q at (%d,%d): %w", grid[y][x], x, y, world.ErrBadInput)
			}
		}
	}
	return nil
}
