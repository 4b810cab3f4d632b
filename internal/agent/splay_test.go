package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplayIsWithinInterval(t *testing.T) {
	s := splaySeconds("host1", "chk1", 1_700_000_000_000, 30)
	assert.GreaterOrEqual(t, s, 0.0)
	assert.Less(t, s, 30.0)
}

func TestSplayIsDeterministic(t *testing.T) {
	a := splaySeconds("host1", "chk1", 1_700_000_000_000, 30)
	b := splaySeconds("host1", "chk1", 1_700_000_000_000, 30)
	assert.Equal(t, a, b)
}

func TestSplayVariesByCheckName(t *testing.T) {
	a := splaySeconds("host1", "chk1", 1_700_000_000_000, 30)
	b := splaySeconds("host1", "chk2", 1_700_000_000_000, 30)
	assert.NotEqual(t, a, b)
}

func TestSplayZeroIntervalIsZero(t *testing.T) {
	assert.Equal(t, 0.0, splaySeconds("host1", "chk1", 1_700_000_000_000, 0))
}
