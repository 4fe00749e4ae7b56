package config

import (
	"strconv"

	"github.com/kandiyiit/sbgen/pkg/cost"
	"github.com/kandiyiit/sbgen/pkg/utils"
)

// Method names a search engine.
const (
	MethodHillClimbing       = "hill_climbing"
	MethodSimulatedAnnealing = "simulated_annealing"
	MethodGenetic            = "genetic"
)

// Cost domains.
const (
	CostTypeDouble = "double"
	CostTypeInt64  = "int64_t"
)

// Selection and crossover names accepted in genetic method parameters.
const (
	SelectionBasic    = "basic"
	SelectionRank     = "rank"
	SelectionRoulette = "roulette"

	CrossoverNone  = "none"
	CrossoverCycle = "cycle"
	CrossoverPMX   = "pmx"
)

// RawOptions carries the flag values exactly as the user gave them. Zero or
// sentinel values mean "not set"; Defaults holds the sentinels.
type RawOptions struct {
	Method             string `yaml:"method,omitempty"`
	Nonlinearity       int    `yaml:"nonlinearity,omitempty"`
	DeltaUniformity    int    `yaml:"deltaUniformity,omitempty"`
	AlgebraicImmunity  int    `yaml:"algebraicImmunity,omitempty"`
	Seed               string `yaml:"seed,omitempty"`
	CostFunction       string `yaml:"costFunction,omitempty"`
	CostFunctionParams string `yaml:"costFunctionParams,omitempty"`
	CostType           string `yaml:"costType,omitempty"`
	MethodParams       string `yaml:"methodParams,omitempty"`
	ThreadCount        int    `yaml:"threadCount,omitempty"`
	TryPerThread       int    `yaml:"tryPerThread,omitempty"`
	MaxFrozenLoops     int    `yaml:"maxFrozenLoops,omitempty"`
	SboxCount          int    `yaml:"sboxCount,omitempty"`
	Visibility         bool   `yaml:"visibility,omitempty"`
	ErasePoints        bool   `yaml:"erasePoints,omitempty"`
	ToFile             string `yaml:"toFile,omitempty"`
}

// Defaults returns the sentinel-filled option set the flag surface starts
// from. Nonlinearity -1 marks the required target as missing.
func Defaults() RawOptions {
	return RawOptions{
		Nonlinearity:   -1,
		CostFunction:   string(cost.KindWHS),
		CostType:       CostTypeDouble,
		ThreadCount:    1,
		TryPerThread:   1000000,
		MaxFrozenLoops: 100000,
		SboxCount:      1,
	}
}

// AnnealOptions are the simulated-annealing method parameters, in their
// declared order: max_outer_loops, max_inner_loops, initial_temperature,
// alpha.
type AnnealOptions struct {
	MaxOuterLoops      int32
	MaxInnerLoops      int32
	InitialTemperature float64
	Alpha              float64
}

// GeneticOptions are the genetic method parameters, in their declared order:
// initial_population_count, selection_count, iterations_count,
// mutants_per_parent, crossover_count, child_per_parent, selection,
// crossover.
type GeneticOptions struct {
	InitialPopulationCount int32
	SelectionCount         int32
	IterationsCount        int32
	MutantsPerParent       int32
	CrossoverCount         int32
	ChildPerParent         int32
	Selection              string
	Crossover              string
}

// RunConfig is the fully parsed and checked run description handed to the
// app. Engine-level range validation still happens at the engine entry.
type RunConfig struct {
	Method string

	Nonlinearity         int32
	DeltaUniformity      int32
	UseDeltaUniformity   bool
	AlgebraicImmunity    int32
	UseAlgebraicImmunity bool
	Seed                 uint64
	UseRandomSeed        bool

	CostFunction cost.Kind
	CostParams   []int32
	CostType     string

	ThreadCount    int32
	TryPerThread   int32
	MaxFrozenLoops int32

	Anneal  AnnealOptions
	Genetic GeneticOptions

	SboxCount   int
	Visibility  bool
	ErasePoints bool
	ToFile      string
}

// NewRunConfig turns raw flag values into a checked RunConfig.
func NewRunConfig(raw RawOptions) (*RunConfig, error) {
	cfg := &RunConfig{
		SboxCount:   raw.SboxCount,
		Visibility:  raw.Visibility,
		ErasePoints: raw.ErasePoints,
		ToFile:      raw.ToFile,
	}

	switch raw.Method {
	case MethodHillClimbing, MethodSimulatedAnnealing, MethodGenetic:
		cfg.Method = raw.Method
	case "":
		return nil, configErrorf("missing required option --method")
	default:
		return nil, configErrorf("unknown method %q. See help for available methods", raw.Method)
	}

	if raw.Nonlinearity < 0 {
		return nil, configErrorf("missing required option --nonlinearity")
	}
	cfg.Nonlinearity = int32(raw.Nonlinearity)

	if raw.DeltaUniformity > 0 {
		cfg.UseDeltaUniformity = true
		cfg.DeltaUniformity = int32(raw.DeltaUniformity)
	}
	if raw.AlgebraicImmunity > 0 {
		cfg.UseAlgebraicImmunity = true
		cfg.AlgebraicImmunity = int32(raw.AlgebraicImmunity)
	}

	if raw.Seed == "" {
		cfg.UseRandomSeed = true
	} else {
		seed, err := strconv.ParseUint(raw.Seed, 0, 64)
		if err != nil {
			return nil, configErrorf("unparsable seed %q", raw.Seed)
		}
		cfg.Seed = seed
	}

	switch cost.Kind(raw.CostFunction) {
	case cost.KindWHS, cost.KindMaxWHS, cost.KindWCF, cost.KindPCF, cost.KindCF1, cost.KindCF2:
		cfg.CostFunction = cost.Kind(raw.CostFunction)
	default:
		return nil, configErrorf("unknown cost function %q. See help for available cost functions", raw.CostFunction)
	}

	params, err := utils.ParseInt32List(raw.CostFunctionParams)
	if err != nil {
		return nil, configErrorf("bad cost function params: %v", err)
	}
	// whs and max_whs fall back to r=12, x=0 when no params are given.
	if len(params) == 0 && (cfg.CostFunction == cost.KindWHS || cfg.CostFunction == cost.KindMaxWHS) {
		params = []int32{12, 0}
	}
	cfg.CostParams = params
	if _, err := cost.New[float64](cfg.CostFunction, cfg.CostParams); err != nil {
		return nil, configErrorf("%v", err)
	}

	switch raw.CostType {
	case CostTypeDouble, CostTypeInt64:
		cfg.CostType = raw.CostType
	default:
		return nil, configErrorf("unknown cost type %q. Possible values: double, int64_t", raw.CostType)
	}

	cfg.ThreadCount = int32(raw.ThreadCount)
	cfg.TryPerThread = int32(raw.TryPerThread)
	cfg.MaxFrozenLoops = int32(raw.MaxFrozenLoops)

	if err := cfg.parseMethodParams(raw.MethodParams); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *RunConfig) parseMethodParams(raw string) error {
	parts := utils.SplitParamList(raw)

	switch cfg.Method {
	case MethodHillClimbing:
		if len(parts) != 0 {
			return configErrorf("hill_climbing takes no method params, got %d", len(parts))
		}
		return nil

	case MethodSimulatedAnnealing:
		cfg.Anneal = AnnealOptions{
			MaxOuterLoops:      100,
			MaxInnerLoops:      10000,
			InitialTemperature: 1000,
			Alpha:              0.99,
		}
		if len(parts) == 0 {
			return nil
		}
		if len(parts) != 4 {
			return configErrorf("simulated_annealing expects 4 method params (max_outer_loops, max_inner_loops, initial_temperature, alpha), got %d", len(parts))
		}
		outer, err1 := strconv.ParseInt(parts[0], 0, 32)
		inner, err2 := strconv.ParseInt(parts[1], 0, 32)
		temp, err3 := strconv.ParseFloat(parts[2], 64)
		alpha, err4 := strconv.ParseFloat(parts[3], 64)
		for _, err := range []error{err1, err2, err3, err4} {
			if err != nil {
				return configErrorf("bad simulated_annealing params: %v", err)
			}
		}
		cfg.Anneal = AnnealOptions{
			MaxOuterLoops:      int32(outer),
			MaxInnerLoops:      int32(inner),
			InitialTemperature: temp,
			Alpha:              alpha,
		}
		return nil

	case MethodGenetic:
		cfg.Genetic = GeneticOptions{
			InitialPopulationCount: 100,
			SelectionCount:         10,
			IterationsCount:        15000,
			MutantsPerParent:       10,
			Selection:              SelectionBasic,
			Crossover:              CrossoverNone,
		}
		if len(parts) == 0 {
			return nil
		}
		if len(parts) > 8 {
			return configErrorf("genetic expects at most 8 method params, got %d", len(parts))
		}
		ints := make([]int32, 0, 6)
		for i := 0; i < len(parts) && i < 6; i++ {
			v, err := strconv.ParseInt(parts[i], 0, 32)
			if err != nil {
				return configErrorf("bad genetic params: unparsable number %q", parts[i])
			}
			ints = append(ints, int32(v))
		}
		fields := []*int32{
			&cfg.Genetic.InitialPopulationCount,
			&cfg.Genetic.SelectionCount,
			&cfg.Genetic.IterationsCount,
			&cfg.Genetic.MutantsPerParent,
			&cfg.Genetic.CrossoverCount,
			&cfg.Genetic.ChildPerParent,
		}
		for i, v := range ints {
			*fields[i] = v
		}
		if len(parts) > 6 {
			switch parts[6] {
			case SelectionBasic, SelectionRank, SelectionRoulette:
				cfg.Genetic.Selection = parts[6]
			default:
				return configErrorf("unknown selection %q. Possible values: basic, rank, roulette", parts[6])
			}
		}
		if len(parts) > 7 {
			switch parts[7] {
			case CrossoverNone, CrossoverCycle, CrossoverPMX:
				cfg.Genetic.Crossover = parts[7]
			default:
				return configErrorf("unknown crossover %q. Possible values: none, cycle, pmx", parts[7])
			}
		}
		return nil
	}

	return nil
}
