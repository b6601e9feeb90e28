package tambour

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ColorGroup is a named set of thread indices. Groups are an organizational
// view over the thread list of a pattern, they never affect stitch replay.
type ColorGroup struct {
	Name         string
	Description  string
	Parent       string
	DisplayOrder int
	Visible      bool
	Locked       bool
	Metadata     map[string]string

	threads map[int]struct{}
}

// NewColorGroup returns a visible, unlocked group holding the given thread indices.
func NewColorGroup(name string, threads ...int) *ColorGroup {
	g := &ColorGroup{
		Name:     name,
		Visible:  true,
		Metadata: make(map[string]string),
		threads:  make(map[int]struct{}),
	}
	for _, t := range threads {
		g.AddThread(t)
	}
	return g
}

// AddThread adds a thread index and reports whether it was not present yet.
func (g *ColorGroup) AddThread(idx int) bool {
	if g.threads == nil {
		g.threads = make(map[int]struct{})
	}
	if _, ok := g.threads[idx]; ok {
		return false
	}
	g.threads[idx] = struct{}{}
	return true
}

// RemoveThread removes a thread index and reports whether it was present.
func (g *ColorGroup) RemoveThread(idx int) bool {
	if _, ok := g.threads[idx]; !ok {
		return false
	}
	delete(g.threads, idx)
	return true
}

// Contains reports whether the thread index belongs to the group.
func (g *ColorGroup) Contains(idx int) bool {
	_, ok := g.threads[idx]
	return ok
}

// Len returns the number of threads in the group.
func (g *ColorGroup) Len() int {
	return len(g.threads)
}

// Threads returns the thread indices in ascending order.
func (g *ColorGroup) Threads() []int {
	idx := maps.Keys(g.threads)
	slices.Sort(idx)
	return idx
}

func (g *ColorGroup) clone() *ColorGroup {
	c := *g
	c.Metadata = make(map[string]string, len(g.Metadata))
	for k, v := range g.Metadata {
		c.Metadata[k] = v
	}
	c.threads = make(map[int]struct{}, len(g.threads))
	for k := range g.threads {
		c.threads[k] = struct{}{}
	}
	return &c
}

// ThreadGrouping holds the named color groups of a pattern and an optional
// default group receiving ungrouped threads.
type ThreadGrouping struct {
	Default string

	groups map[string]*ColorGroup
}

// NewThreadGrouping returns an empty grouping. When def is not empty the
// default group is created too.
func NewThreadGrouping(def string) *ThreadGrouping {
	tg := &ThreadGrouping{groups: make(map[string]*ColorGroup)}
	if def != "" {
		tg.Default = def
		tg.Add(NewColorGroup(def))
	}
	return tg
}

// Add inserts a group, replacing any group with the same name.
func (tg *ThreadGrouping) Add(g *ColorGroup) {
	if tg.groups == nil {
		tg.groups = make(map[string]*ColorGroup)
	}
	tg.groups[g.Name] = g
}

// Remove deletes a group by name and returns it.
func (tg *ThreadGrouping) Remove(name string) (*ColorGroup, bool) {
	g, ok := tg.groups[name]
	if ok {
		delete(tg.groups, name)
	}
	return g, ok
}

// Group returns the group with the given name.
func (tg *ThreadGrouping) Group(name string) (*ColorGroup, bool) {
	g, ok := tg.groups[name]
	return g, ok
}

// Len returns the number of groups.
func (tg *ThreadGrouping) Len() int {
	return len(tg.groups)
}

// Names returns the group names in lexical order.
func (tg *ThreadGrouping) Names() []string {
	names := maps.Keys(tg.groups)
	slices.Sort(names)
	return names
}

// Ordered returns the groups sorted by display order, then by name.
func (tg *ThreadGrouping) Ordered() []*ColorGroup {
	groups := maps.Values(tg.groups)
	slices.SortFunc(groups, func(a, b *ColorGroup) bool {
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		return a.Name < b.Name
	})
	return groups
}

// GroupsOf returns the names of the groups containing the thread index.
func (tg *ThreadGrouping) GroupsOf(idx int) []string {
	var names []string
	for _, name := range tg.Names() {
		if tg.groups[name].Contains(idx) {
			names = append(names, name)
		}
	}
	return names
}

// Ungrouped returns the thread indices below total that belong to no group.
func (tg *ThreadGrouping) Ungrouped(total int) []int {
	var idx []int
	for i := 0; i < total; i++ {
		if len(tg.GroupsOf(i)) == 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// AssignDefault moves every ungrouped thread below total into the default
// group and returns how many were assigned.
func (tg *ThreadGrouping) AssignDefault(total int) (int, error) {
	if tg.Default == "" {
		return 0, errors.New("no default group configured")
	}
	g, ok := tg.groups[tg.Default]
	if !ok {
		return 0, errors.Errorf("default group %q does not exist", tg.Default)
	}
	ungrouped := tg.Ungrouped(total)
	for _, i := range ungrouped {
		g.AddThread(i)
	}
	return len(ungrouped), nil
}

// Merge copies the groups of o into tg, replacing groups with the same name.
func (tg *ThreadGrouping) Merge(o *ThreadGrouping) {
	for _, g := range o.groups {
		tg.Add(g.clone())
	}
}

// Validate returns one message per structural problem: unknown parents,
// circular parent chains and a missing default group. It returns nil for
// a consistent grouping.
func (tg *ThreadGrouping) Validate() []string {
	var problems []string

	for _, name := range tg.Names() {
		g := tg.groups[name]
		if g.Parent == "" {
			continue
		}
		if _, ok := tg.groups[g.Parent]; !ok {
			problems = append(problems, fmt.Sprintf("group %q has unknown parent %q", name, g.Parent))
			continue
		}
		visited := map[string]bool{}
		chain := []string{}
		for cur := name; cur != ""; {
			if visited[cur] {
				problems = append(problems, fmt.Sprintf("group %q has a circular parent chain: %s",
					name, strings.Join(append(chain, cur), " -> ")))
				break
			}
			visited[cur] = true
			chain = append(chain, cur)

			next, ok := tg.groups[cur]
			if !ok {
				break
			}
			cur = next.Parent
		}
	}

	if tg.Default != "" {
		if _, ok := tg.groups[tg.Default]; !ok {
			problems = append(problems, fmt.Sprintf("default group %q does not exist", tg.Default))
		}
	}
	return problems
}

func (tg *ThreadGrouping) clone() *ThreadGrouping {
	c := &ThreadGrouping{Default: tg.Default, groups: make(map[string]*ColorGroup, len(tg.groups))}
	for k, g := range tg.groups {
		c.groups[k] = g.clone()
	}
	return c
}
