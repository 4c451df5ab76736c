package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyProximityDefaults_AbsentKeysGetDefaults(t *testing.T) {
	cfg := &Config{}

	applyProximityDefaults(cfg)

	assert.Equal(t, float64(defaultProximityRadiusMeters), cfg.Proximity.RadiusMeters)
	require.NotNil(t, cfg.Proximity.Cooldown)
	assert.Equal(t, defaultProximityCooldown, *cfg.Proximity.Cooldown)
}

func TestApplyProximityDefaults_ExplicitZeroCooldownStaysZero(t *testing.T) {
	cfg := &Config{}
	zero := time.Duration(0)
	cfg.Proximity.Cooldown = &zero

	applyProximityDefaults(cfg)

	require.NotNil(t, cfg.Proximity.Cooldown)
	assert.Equal(t, time.Duration(0), *cfg.Proximity.Cooldown)
}

func TestApplyProximityDefaults_NegativeCooldownGetsDefault(t *testing.T) {
	cfg := &Config{}
	negative := -time.Second
	cfg.Proximity.Cooldown = &negative

	applyProximityDefaults(cfg)

	require.NotNil(t, cfg.Proximity.Cooldown)
	assert.Equal(t, defaultProximityCooldown, *cfg.Proximity.Cooldown)
}

func TestApplyProximityDefaults_ConfiguredValuesKept(t *testing.T) {
	cfg := &Config{}
	cfg.Proximity.RadiusMeters = 200
	cooldown := 60 * time.Second
	cfg.Proximity.Cooldown = &cooldown

	applyProximityDefaults(cfg)

	assert.Equal(t, float64(200), cfg.Proximity.RadiusMeters)
	assert.Equal(t, 60*time.Second, *cfg.Proximity.Cooldown)
}
