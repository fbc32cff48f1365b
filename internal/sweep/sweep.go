// Package sweep runs a grid of powder scenarios across a worker pool and
// summarizes each run.
package sweep

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"powder/internal/sims/powder"
)

// Axis is one swept key with the values it takes.
type Axis struct {
	Key    string
	Values []string
}

// ParseAxis reads "key=v1,v2,...".
func ParseAxis(s string) (Axis, error) {
	key, values, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return Axis{}, fmt.Errorf("sweep: axis %q is not key=v1,v2", s)
	}
	var vals []string
	for _, v := range strings.Split(values, ",") {
		if v = strings.TrimSpace(v); v != "" {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return Axis{}, fmt.Errorf("sweep: axis %q has no values", key)
	}
	return Axis{Key: key, Values: vals}, nil
}

// Plan describes a sweep.
type Plan struct {
	Base    powder.Config
	Axes    []Axis
	Steps   int
	Workers int
	Logger  *log.Logger
}

// Expand returns every combination of axis values, first axis slowest.
func (p Plan) Expand() []map[string]string {
	combos := []map[string]string{{}}
	for _, axis := range p.Axes {
		next := make([]map[string]string, 0, len(combos)*len(axis.Values))
		for _, c := range combos {
			for _, v := range axis.Values {
				m := make(map[string]string, len(c)+1)
				for k, old := range c {
					m[k] = old
				}
				m[axis.Key] = v
				next = append(next, m)
			}
		}
		combos = next
	}
	return combos
}

// Result summarizes one scenario.
type Result struct {
	Index     int
	Overrides map[string]string
	Config    powder.Config
	Final     powder.Stats

	PeakPressure float64
	Transitions  int
	Destroyed    int
	Elapsed      time.Duration
	Err          error
}

// Params renders the overrides as a sorted key=value list.
func (r Result) Params() string {
	keys := make([]string, 0, len(r.Overrides))
	for k := range r.Overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + r.Overrides[k]
	}
	return strings.Join(parts, " ")
}

// Run simulates every combination of the plan. Each worker owns its worlds
// and results come back in plan order. Cancelling ctx stops handing out new
// scenarios.
func Run(ctx context.Context, p Plan) ([]Result, error) {
	combos := p.Expand()
	workers := p.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(combos) {
		workers = len(combos)
	}
	logger := p.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	type job struct {
		index     int
		overrides map[string]string
	}
	jobs := make(chan job)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res := runScenario(p.Base, j.overrides, p.Steps)
				res.Index = j.index
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for i, c := range combos {
			select {
			case jobs <- job{index: i, overrides: c}:
			case <-ctx.Done():
				return
			}
		}
	}()

	out := make([]Result, 0, len(combos))
	for res := range results {
		if res.Err != nil {
			logger.Warn("scenario failed", "params", res.Params(), "err", res.Err)
		} else {
			logger.Debug("scenario done", "params", res.Params(), "elements", res.Final.Elements, "elapsed", res.Elapsed)
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, ctx.Err()
}

func runScenario(base powder.Config, overrides map[string]string, steps int) Result {
	cfg := powder.ApplyMap(base, overrides)
	res := Result{Overrides: overrides, Config: cfg}
	start := time.Now()
	world, err := powder.NewWithConfig(cfg)
	if err != nil {
		res.Err = err
		return res
	}
	world.SetLogger(log.New(io.Discard))
	for i := 0; i < steps; i++ {
		world.Step()
		st := world.Stats()
		res.Transitions += st.Transitions
		res.Destroyed += st.Destroyed
		if st.PeakPressure > res.PeakPressure {
			res.PeakPressure = st.PeakPressure
		}
	}
	res.Final = world.Stats()
	res.Elapsed = time.Since(start)
	return res
}

// ByPeakPressure orders results highest peak pressure first, keeping plan
// order among ties.
func ByPeakPressure(results []Result) []Result {
	out := append([]Result(nil), results...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PeakPressure > out[j].PeakPressure })
	return out
}
