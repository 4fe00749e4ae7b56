package app

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/kandiyiit/sbgen/pkg/config"
	"github.com/kandiyiit/sbgen/pkg/cost"
	"github.com/kandiyiit/sbgen/pkg/log"
	"github.com/kandiyiit/sbgen/pkg/sbox"
	"github.com/kandiyiit/sbgen/pkg/search"
	"github.com/kandiyiit/sbgen/pkg/tasks"
	"github.com/kandiyiit/sbgen/pkg/utils"
)

// ErrNotFound is returned when every budget is exhausted without a hit. It
// is an ordinary outcome of a bounded search, not a bug; the CLI maps it to
// a dedicated message and a non-zero exit.
var ErrNotFound = stderrors.New("target s-box not found")

// App struct
type App struct {
	Config *config.AppConfig
	Log    *logrus.Entry
}

// NewApp bootstrap a new application
func NewApp(config *config.AppConfig) (*App, error) {
	app := &App{Config: config}
	app.Log = log.NewLogger(config)
	return app, nil
}

// Run executes the configured search once per requested S-box, printing each
// result as it lands.
func (app *App) Run() error {
	run := app.Config.Run

	out := io.Writer(os.Stdout)
	colored := true
	if run.ToFile != "" {
		f, err := os.Create(run.ToFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
		colored = false
	}

	for i := 0; i < run.SboxCount; i++ {
		var result *sbox.Sbox
		var err error
		if run.CostType == config.CostTypeInt64 {
			result, err = runSearch[int64](app, i)
		} else {
			result, err = runSearch[float64](app, i)
		}
		if err != nil {
			return err
		}
		if result == nil {
			return ErrNotFound
		}

		s := *result
		if !s.IsBijective() {
			panic("sbgen: search returned a non-bijective s-box")
		}
		if run.ErasePoints {
			s = sbox.EraseFixedPoints(s, app.eraseSeed(i))
		}
		app.printResult(out, colored, s)
	}

	return nil
}

func (app *App) eraseSeed(runIdx int) uint64 {
	run := app.Config.Run
	if run.UseRandomSeed {
		return uint64(time.Now().UnixNano())
	}
	return run.Seed + uint64(runIdx)
}

func (app *App) printResult(w io.Writer, colored bool, s sbox.Sbox) {
	header := "target sbox:"
	if colored {
		header = utils.ColoredString(header, color.FgGreen)
	}
	fmt.Fprintln(w, header)
	fmt.Fprint(w, s.String())
	fmt.Fprintf(w, "NL=%d\n", sbox.Nonlinearity(s))
	fmt.Fprintf(w, "DU=%d\n", sbox.DeltaUniformity(s))
	fmt.Fprintf(w, "AI=%d\n", sbox.AlgebraicImmunity(s))
	fmt.Fprintf(w, "Fixed Points=%d\n", lo.Ternary(sbox.HasFixedPoints(s), 1, 0))
}

// runSearch dispatches one search in the requested numeric domain. Pinned
// seeds are offset by the run index so --sbox_count produces distinct
// permutations while staying reproducible.
func runSearch[T cost.Number](app *App, runIdx int) (*sbox.Sbox, error) {
	run := app.Config.Run

	costFn, err := cost.New[T](run.CostFunction, run.CostParams)
	if err != nil {
		return nil, err
	}

	targets := search.Targets{
		Nonlinearity:         run.Nonlinearity,
		DeltaUniformity:      run.DeltaUniformity,
		UseDeltaUniformity:   run.UseDeltaUniformity,
		AlgebraicImmunity:    run.AlgebraicImmunity,
		UseAlgebraicImmunity: run.UseAlgebraicImmunity,
		UseRandomSeed:        run.UseRandomSeed,
	}
	if !run.UseRandomSeed {
		targets.Seed = run.Seed + uint64(runIdx)
	}

	var iterations atomic.Uint64
	if app.Config.Visibility {
		start := time.Now()
		ticker := tasks.NewTicker(time.Second, func() {
			app.Log.WithFields(logrus.Fields{
				"elapsed":    time.Since(start).Round(time.Second),
				"iterations": iterations.Load(),
			}).Info("search in progress")
		})
		defer ticker.Stop()
	}

	switch run.Method {
	case config.MethodHillClimbing:
		return search.HillClimb(search.HillClimbParams[T]{
			Targets:        targets,
			ThreadCount:    run.ThreadCount,
			TryPerThread:   run.TryPerThread,
			MaxFrozenCount: run.MaxFrozenLoops,
			CostFunction:   costFn,
			Log:            app.Log,
			IterationTotal: &iterations,
		})

	case config.MethodSimulatedAnnealing:
		return search.SimulatedAnneal(search.AnnealParams[T]{
			Targets:             targets,
			ThreadCount:         run.ThreadCount,
			MaxOuterLoops:       run.Anneal.MaxOuterLoops,
			MaxInnerLoops:       run.Anneal.MaxInnerLoops,
			MaxFrozenOuterLoops: run.MaxFrozenLoops,
			InitialTemperature:  run.Anneal.InitialTemperature,
			Alpha:               run.Anneal.Alpha,
			CostFunction:        costFn,
			Log:                 app.Log,
			IterationTotal:      &iterations,
		})

	case config.MethodGenetic:
		params := search.GeneticParams[T]{
			Targets:                targets,
			ThreadCount:            run.ThreadCount,
			InitialPopulationCount: run.Genetic.InitialPopulationCount,
			SelectionCount:         run.Genetic.SelectionCount,
			IterationsCount:        run.Genetic.IterationsCount,
			MutantsPerParent:       run.Genetic.MutantsPerParent,
			CrossoverCount:         run.Genetic.CrossoverCount,
			ChildPerParent:         run.Genetic.ChildPerParent,
			Selection:              selectionMethod[T](run.Genetic.Selection),
			CostFunction:           costFn,
			Log:                    app.Log,
			IterationTotal:         &iterations,
		}
		if run.Genetic.Crossover != config.CrossoverNone {
			params.UseCrossover = true
			params.Crossover = crossoverMethod(run.Genetic.Crossover)
		}
		return search.Genetic(params)
	}

	return nil, fmt.Errorf("unreachable: method %q passed config validation", run.Method)
}

func selectionMethod[T cost.Number](name string) search.SelectionMethod[T] {
	switch name {
	case config.SelectionRank:
		return search.RankSequentialSelection[T]
	case config.SelectionRoulette:
		return search.RouletteWheelSequentialSelection[T]
	default:
		return search.BasicSelection[T]
	}
}

func crossoverMethod(name string) search.CrossoverMethod {
	if name == config.CrossoverPMX {
		return search.PMXCrossover
	}
	return search.CycleCrossover
}

type errorMapping struct {
	matches  func(error) bool
	newError func(error) string
}

// KnownError takes an error and tells us whether it's an error that we know
// about where we can print a nicely formatted version of it rather than
// panicking with a stack trace
func (app *App) KnownError(err error) (string, bool) {
	var cfgErr *config.ConfigError
	var valErr *search.ValidationError

	mappings := []errorMapping{
		{
			matches:  func(e error) bool { return stderrors.Is(e, ErrNotFound) },
			newError: func(error) string { return "target s-box not found: search budgets exhausted" },
		},
		{
			matches:  func(e error) bool { return stderrors.As(e, &cfgErr) },
			newError: func(e error) string { return e.Error() },
		},
		{
			matches:  func(e error) bool { return stderrors.As(e, &valErr) },
			newError: func(e error) string { return e.Error() },
		},
	}

	for _, mapping := range mappings {
		if mapping.matches(err) {
			return mapping.newError(err), true
		}
	}

	return "", false
}
