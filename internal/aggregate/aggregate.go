// Package aggregate walks an instance's module/category/testcase tree,
// applies the active-profile filter, and produces per-module and overall
// statistics. One corrupt document never blanks a whole report: parse
// failures are logged and the file is skipped.
package aggregate

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mesh-intelligence/casebook/internal/xmlcodec"
	"github.com/mesh-intelligence/casebook/pkg/types"
)

// ProfileFilter restricts which test cases are included. A nil filter or
// empty Active list includes everything. Cases with an empty profile list
// always pass; otherwise Mode decides: AND requires every case profile to
// be active, OR requires at least one.
type ProfileFilter struct {
	Active []string
	Mode   string
}

// Include applies the filter to one test case.
func (f *ProfileFilter) Include(tc *types.TestCase) bool {
	if f == nil || len(f.Active) == 0 {
		return true
	}
	if len(tc.Profiles) == 0 {
		return true
	}
	active := make(map[string]bool, len(f.Active))
	for _, p := range f.Active {
		active[p] = true
	}
	if f.Mode == types.FilterModeAND {
		for _, p := range tc.Profiles {
			if !active[p] {
				return false
			}
		}
		return true
	}
	for _, p := range tc.Profiles {
		if active[p] {
			return true
		}
	}
	return false
}

// StatusCounts accumulates outcome totals. Progress is the rounded
// percentage of passed plus skipped over the total, 0 when the total is 0.
type StatusCounts struct {
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
	Open     int `json:"open"`
	Total    int `json:"total"`
	Progress int `json:"progress"`
}

func (c *StatusCounts) add(status string) {
	switch status {
	case types.StatusPassed:
		c.Passed++
	case types.StatusFailed:
		c.Failed++
	case types.StatusSkipped:
		c.Skipped++
	default:
		c.Open++
	}
	c.Total++
}

func (c *StatusCounts) merge(o StatusCounts) {
	c.Passed += o.Passed
	c.Failed += o.Failed
	c.Skipped += o.Skipped
	c.Open += o.Open
	c.Total += o.Total
}

func (c *StatusCounts) finalize() {
	if c.Total == 0 {
		c.Progress = 0
		return
	}
	c.Progress = int(math.Round(100 * float64(c.Passed+c.Skipped) / float64(c.Total)))
}

// Category holds the filtered, identifier-sorted test cases of one
// category directory.
type Category struct {
	Name      string            `json:"name"`
	TestCases []*types.TestCase `json:"testcases"`
}

// Module holds the name-sorted categories of one module directory.
type Module struct {
	Name       string       `json:"name"`
	Categories []Category   `json:"categories"`
	Totals     StatusCounts `json:"totals"`
}

// Tree is the aggregation result. Totals are only populated by
// CollectDetailed.
type Tree struct {
	Modules []Module     `json:"modules"`
	Totals  StatusCounts `json:"totals"`
}

// TestCases flattens the tree in its deterministic order.
func (t *Tree) TestCases() []*types.TestCase {
	var out []*types.TestCase
	for _, m := range t.Modules {
		for _, c := range m.Categories {
			out = append(out, c.TestCases...)
		}
	}
	return out
}

// Collector walks one instance's testcases directory. The path is
// explicit, not process-wide, so collectors can run against temporary
// trees in tests.
type Collector struct {
	TestcasesDir string
	Logger       *slog.Logger
}

// NewCollector returns a collector for the given testcases root. A nil
// logger is replaced with slog's default.
func NewCollector(testcasesDir string, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{TestcasesDir: testcasesDir, Logger: logger}
}

// Collect walks modules, categories and documents, applying the filter.
// Modules are walked concurrently; the result is ordered by sorted module
// and category names and by test-case identifier regardless of completion
// order.
func (c *Collector) Collect(filter *ProfileFilter) (*Tree, error) {
	moduleNames, err := subdirectories(c.TestcasesDir)
	if err != nil {
		return nil, fmt.Errorf("listing modules in %s: %w", c.TestcasesDir, err)
	}

	modules := make([]Module, len(moduleNames))
	var wg sync.WaitGroup
	for i, name := range moduleNames {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			modules[i] = c.collectModule(name, filter)
		}(i, name)
	}
	wg.Wait()

	return &Tree{Modules: modules}, nil
}

// CollectDetailed is Collect plus per-module and overall status totals.
func (c *Collector) CollectDetailed(filter *ProfileFilter) (*Tree, error) {
	tree, err := c.Collect(filter)
	if err != nil {
		return nil, err
	}
	for i := range tree.Modules {
		m := &tree.Modules[i]
		for _, cat := range m.Categories {
			for _, tc := range cat.TestCases {
				m.Totals.add(tc.Status)
			}
		}
		tree.Totals.merge(m.Totals)
		m.Totals.finalize()
	}
	tree.Totals.finalize()
	return tree, nil
}

func (c *Collector) collectModule(name string, filter *ProfileFilter) Module {
	moduleDir := filepath.Join(c.TestcasesDir, name)
	categoryNames, err := subdirectories(moduleDir)
	if err != nil {
		c.Logger.Warn("skipping unreadable module", "module", name, "error", err)
		return Module{Name: name, Categories: []Category{}}
	}

	module := Module{Name: name, Categories: make([]Category, 0, len(categoryNames))}
	for _, catName := range categoryNames {
		module.Categories = append(module.Categories, c.collectCategory(name, catName, filter))
	}
	return module
}

func (c *Collector) collectCategory(moduleName, catName string, filter *ProfileFilter) Category {
	catDir := filepath.Join(c.TestcasesDir, moduleName, catName)
	cat := Category{Name: catName, TestCases: []*types.TestCase{}}

	entries, err := os.ReadDir(catDir)
	if err != nil {
		c.Logger.Warn("skipping unreadable category", "module", moduleName, "category", catName, "error", err)
		return cat
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || skipName(name) || !strings.HasSuffix(name, ".xml") {
			continue
		}
		if strings.HasPrefix(name, "profiles") {
			continue
		}
		path := filepath.Join(catDir, name)
		tc, err := xmlcodec.LoadTestCase(path)
		if err != nil {
			// Non-fatal: one corrupt file must not blank the report.
			c.Logger.Warn("skipping unparseable document", "path", path, "error", err)
			continue
		}
		if filter.Include(tc) {
			cat.TestCases = append(cat.TestCases, tc)
		}
	}

	sort.Slice(cat.TestCases, func(i, j int) bool {
		return cat.TestCases[i].ID < cat.TestCases[j].ID
	})
	return cat
}

// subdirectories lists the non-hidden child directories of dir, sorted.
func subdirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() && !skipName(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// skipName filters dotfiles and underscore-prefixed names, which the
// layout reserves for internal areas like _attachments.
func skipName(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
