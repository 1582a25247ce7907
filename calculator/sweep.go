package calculator

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"thermo/body"
	"thermo/model"
)

// Scenario sweep
// Each scenario owns an independent engine instance (own state, conditions
// and result log), so runs can proceed in parallel without shared mutable
// state. The pool dispatches scenarios over a channel and collects results
// in submission order.

type Scenario struct {
	Name    string
	Profile body.Profile
	// Program drives the engine: setter calls interleaved with Simulate.
	Program func(Engine) error
}

type SweepResult struct {
	Name string
	Rows []model.ResultRow
	Err  error
}

// RunSweep executes the scenarios on a fixed worker pool. workers <= 0 takes
// the configured default.
func RunSweep(scenarios []Scenario, workers int) []SweepResult {
	if workers <= 0 {
		workers = calCfg.SweepWorkers
	}
	if workers > len(scenarios) {
		workers = len(scenarios)
	}

	type job struct {
		index int
		sc    Scenario
	}
	jobs := make(chan job, len(scenarios))
	results := make([]SweepResult, len(scenarios))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.index] = runScenario(j.sc)
			}
		}()
	}
	for i, sc := range scenarios {
		jobs <- job{index: i, sc: sc}
	}
	close(jobs)
	wg.Wait()
	return results
}

func runScenario(sc Scenario) SweepResult {
	e, err := NewEngine(sc.Profile)
	if err != nil {
		return SweepResult{Name: sc.Name, Err: err}
	}
	if err := sc.Program(e); err != nil {
		log.WithFields(log.Fields{"scenario": sc.Name}).Warn("scenario failed: ", err)
		return SweepResult{Name: sc.Name, Err: err}
	}
	return SweepResult{Name: sc.Name, Rows: e.Results()}
}
