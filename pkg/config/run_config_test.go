package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kandiyiit/sbgen/pkg/cost"
)

func validOptions() RawOptions {
	raw := Defaults()
	raw.Method = MethodHillClimbing
	raw.Nonlinearity = 104
	return raw
}

func TestNewRunConfigDefaults(t *testing.T) {
	cfg, err := NewRunConfig(validOptions())
	require.NoError(t, err)

	assert.Equal(t, MethodHillClimbing, cfg.Method)
	assert.EqualValues(t, 104, cfg.Nonlinearity)
	assert.False(t, cfg.UseDeltaUniformity)
	assert.False(t, cfg.UseAlgebraicImmunity)
	assert.True(t, cfg.UseRandomSeed)
	assert.Equal(t, cost.KindWHS, cfg.CostFunction)
	assert.Equal(t, CostTypeDouble, cfg.CostType)
	assert.EqualValues(t, 1, cfg.ThreadCount)
}

func TestNewRunConfigTargets(t *testing.T) {
	raw := validOptions()
	raw.DeltaUniformity = 8
	raw.AlgebraicImmunity = 3
	raw.Seed = "0xdeadbeef"

	cfg, err := NewRunConfig(raw)
	require.NoError(t, err)
	assert.True(t, cfg.UseDeltaUniformity)
	assert.EqualValues(t, 8, cfg.DeltaUniformity)
	assert.True(t, cfg.UseAlgebraicImmunity)
	assert.EqualValues(t, 3, cfg.AlgebraicImmunity)
	assert.False(t, cfg.UseRandomSeed)
	assert.EqualValues(t, 0xdeadbeef, cfg.Seed)
}

func TestNewRunConfigErrors(t *testing.T) {
	type scenario struct {
		name   string
		mutate func(*RawOptions)
	}

	scenarios := []scenario{
		{"missing method", func(r *RawOptions) { r.Method = "" }},
		{"unknown method", func(r *RawOptions) { r.Method = "tabu_search" }},
		{"missing nonlinearity", func(r *RawOptions) { r.Nonlinearity = -1 }},
		{"bad seed", func(r *RawOptions) { r.Seed = "xyzzy" }},
		{"unknown cost function", func(r *RawOptions) { r.CostFunction = "whx" }},
		{"bad cost params", func(r *RawOptions) { r.CostFunctionParams = "{12, banana}" }},
		{"cost param arity", func(r *RawOptions) { r.CostFunctionParams = "{12}" }},
		{"unknown cost type", func(r *RawOptions) { r.CostType = "float" }},
		{"hill method params", func(r *RawOptions) { r.MethodParams = "{1}" }},
	}

	for _, sc := range scenarios {
		raw := validOptions()
		sc.mutate(&raw)
		cfg, err := NewRunConfig(raw)
		assert.Nil(t, cfg, sc.name)
		var cfgErr *ConfigError
		assert.ErrorAs(t, err, &cfgErr, sc.name)
	}
}

func TestAnnealMethodParams(t *testing.T) {
	raw := validOptions()
	raw.Method = MethodSimulatedAnnealing
	raw.MethodParams = "{10, 10000, 1000, 0.99}"

	cfg, err := NewRunConfig(raw)
	require.NoError(t, err)
	assert.EqualValues(t, 10, cfg.Anneal.MaxOuterLoops)
	assert.EqualValues(t, 10000, cfg.Anneal.MaxInnerLoops)
	assert.EqualValues(t, 1000.0, cfg.Anneal.InitialTemperature)
	assert.EqualValues(t, 0.99, cfg.Anneal.Alpha)

	raw.MethodParams = "{10, 10000}"
	_, err = NewRunConfig(raw)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestGeneticMethodParams(t *testing.T) {
	raw := validOptions()
	raw.Method = MethodGenetic
	raw.MethodParams = "{100, 10, 15000, 10, 50, 1, roulette, pmx}"

	cfg, err := NewRunConfig(raw)
	require.NoError(t, err)
	assert.EqualValues(t, 100, cfg.Genetic.InitialPopulationCount)
	assert.EqualValues(t, 10, cfg.Genetic.SelectionCount)
	assert.EqualValues(t, 15000, cfg.Genetic.IterationsCount)
	assert.EqualValues(t, 10, cfg.Genetic.MutantsPerParent)
	assert.EqualValues(t, 50, cfg.Genetic.CrossoverCount)
	assert.EqualValues(t, 1, cfg.Genetic.ChildPerParent)
	assert.Equal(t, SelectionRoulette, cfg.Genetic.Selection)
	assert.Equal(t, CrossoverPMX, cfg.Genetic.Crossover)

	// Defaults apply when the list is empty or short.
	raw.MethodParams = ""
	cfg, err = NewRunConfig(raw)
	require.NoError(t, err)
	assert.EqualValues(t, 100, cfg.Genetic.InitialPopulationCount)
	assert.Equal(t, SelectionBasic, cfg.Genetic.Selection)
	assert.Equal(t, CrossoverNone, cfg.Genetic.Crossover)

	raw.MethodParams = "{40, 5}"
	cfg, err = NewRunConfig(raw)
	require.NoError(t, err)
	assert.EqualValues(t, 40, cfg.Genetic.InitialPopulationCount)
	assert.EqualValues(t, 5, cfg.Genetic.SelectionCount)
	assert.EqualValues(t, 15000, cfg.Genetic.IterationsCount)

	raw.MethodParams = "{100, 10, 15000, 10, 50, 1, tournament}"
	_, err = NewRunConfig(raw)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
