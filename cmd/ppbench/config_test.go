package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseConfig() *config {
	return &config{
		SimulatorName: "batch",
		ProtocolName:  "random1",
		NumAgents:     100,
		NumStates:     20,
		NumRounds:     10,
		NumRepeats:    1,
	}
}

func TestConfigValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, baseConfig().validate())
}

func TestConfigValidateRejectsUnknownSimulator(t *testing.T) {
	cfg := baseConfig()
	cfg.SimulatorName = "quantum"
	assert.Error(t, cfg.validate())
}

func TestConfigValidateRejectsUnknownProtocol(t *testing.T) {
	cfg := baseConfig()
	cfg.ProtocolName = "coinflip"
	assert.Error(t, cfg.validate())
}

func TestConfigValidateRejectsOddStatesForClock(t *testing.T) {
	cfg := baseConfig()
	cfg.ProtocolName = "clock"
	cfg.NumStates = 21
	assert.Error(t, cfg.validate())
}

func TestConfigValidateAcceptsEvenStatesForRunningClock(t *testing.T) {
	cfg := baseConfig()
	cfg.ProtocolName = "running-clock"
	cfg.NumStates = 12
	assert.NoError(t, cfg.validate())
}

func TestConfigValidateRejectsTooFewAgents(t *testing.T) {
	cfg := baseConfig()
	cfg.NumAgents = 1
	assert.Error(t, cfg.validate())
}

func TestCSVSimulatorNameRenamesDistrAlias(t *testing.T) {
	cfg := baseConfig()
	cfg.SimulatorName = "distr-alias"
	assert.Equal(t, "distr-alias-fixed", cfg.csvSimulatorName())
}

func TestCSVSimulatorNamePassesThroughOtherNames(t *testing.T) {
	cfg := baseConfig()
	assert.Equal(t, "batch", cfg.csvSimulatorName())
}
