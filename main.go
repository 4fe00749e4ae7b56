package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-errors/errors"
	"github.com/integrii/flaggy"

	"github.com/kandiyiit/sbgen/pkg/app"
	"github.com/kandiyiit/sbgen/pkg/config"
)

var (
	commit      string
	version     = "unversioned"
	date        string
	buildSource = "unknown"

	debuggingFlag = false
	configFile    = ""
)

func main() {
	info := fmt.Sprintf(
		"%s\nDate: %s\nBuildSource: %s\nCommit: %s\nOS: %s\nArch: %s",
		version,
		date,
		buildSource,
		commit,
		runtime.GOOS,
		runtime.GOARCH,
	)

	raw := config.Defaults()

	flaggy.SetName("sbgen")
	flaggy.SetDescription("Search for 8-bit bijective s-boxes with target cryptographic properties")
	flaggy.DefaultParser.AdditionalHelpPrepend = "https://github.com/kandiyiit/sbgen"

	flaggy.String(&raw.Method, "m", "method", "Search method: hill_climbing, simulated_annealing or genetic")
	flaggy.Int(&raw.Nonlinearity, "n", "nonlinearity", "Target nonlinearity (required, lower bound)")
	flaggy.Int(&raw.DeltaUniformity, "u", "delta_uniformity", "Target delta uniformity (upper bound)")
	flaggy.Int(&raw.AlgebraicImmunity, "a", "algebraic_immunity", "Target algebraic immunity (lower bound)")
	flaggy.String(&raw.Seed, "s", "seed", "Fixed random seed; omit for entropy seeding")
	flaggy.String(&raw.CostFunction, "c", "cost_function", "Cost function: whs, max_whs, wcf, pcf, cf1 or cf2")
	flaggy.String(&raw.CostFunctionParams, "p", "cost_function_params", "Cost function params, e.g. \"{12, 0}\" for whs")
	flaggy.String(&raw.CostType, "", "cost_type", "Numeric domain of the cost: double or int64_t")
	flaggy.String(&raw.MethodParams, "", "method_params", "Method params in declared order, e.g. \"{10, 10000, 1000, 0.99}\" for simulated_annealing")
	flaggy.Int(&raw.ThreadCount, "t", "thread_count", "Worker thread count")
	flaggy.Int(&raw.TryPerThread, "", "try_per_thread", "Maximal iteration count per thread")
	flaggy.Int(&raw.MaxFrozenLoops, "", "max_frozen_loops", "Maximal iteration count without any changes")
	flaggy.Int(&raw.SboxCount, "", "sbox_count", "Number of s-boxes to generate")
	flaggy.Bool(&raw.Visibility, "v", "visibility", "Enable verbose mode")
	flaggy.Bool(&raw.ErasePoints, "e", "erase_points", "Erase fixed points from every found s-box")
	flaggy.String(&raw.ToFile, "o", "to_file", "Write found s-boxes to a file instead of stdout")
	flaggy.String(&configFile, "f", "config", "Load options from a YAML file (explicit flags win)")
	flaggy.Bool(&debuggingFlag, "d", "debug", "a boolean")
	flaggy.SetVersion(info)

	flaggy.Parse()

	if configFile != "" {
		merged, err := config.MergeFileOptions(configFile, raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sbgen: %s\n", err)
			os.Exit(1)
		}
		raw = merged
	}

	runConfig, err := config.NewRunConfig(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sbgen: %s\n", err)
		os.Exit(1)
	}

	appConfig := config.NewAppConfig("sbgen", version, commit, date, buildSource, debuggingFlag, runConfig)

	app, err := app.NewApp(appConfig)
	if err == nil {
		err = app.Run()
	}

	if err != nil {
		if errMessage, known := app.KnownError(err); known {
			fmt.Fprintf(os.Stderr, "sbgen: %s\n", errMessage)
			os.Exit(1)
		}

		newErr := errors.Wrap(err, 0)
		stackTrace := newErr.ErrorStack()
		app.Log.Error(stackTrace)

		fmt.Fprintf(os.Stderr, "sbgen: unexpected error\n\n%s\n", stackTrace)
		os.Exit(1)
	}
}
