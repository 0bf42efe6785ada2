package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMachineHappyPath(t *testing.T) {
	m := NewMachine(3)
	assert.Equal(t, StateStart, m.Current())

	m.Begin()
	assert.Equal(t, StateSearching, m.Current())
	assert.Equal(t, 1, m.Attempts())

	m.SearchOK()
	assert.Equal(t, StateScraping, m.Current())

	m.ScrapeOK()
	assert.Equal(t, StateReporting, m.Current())

	m.Reported()
	assert.Equal(t, StateDone, m.Current())
	assert.True(t, m.Terminal())
}

func TestMachineRetriesThenFails(t *testing.T) {
	m := NewMachine(3)
	m.Begin()

	assert.True(t, m.Fail(), "first failure leaves attempts")
	assert.Equal(t, StateSearching, m.Current())
	assert.Equal(t, 2, m.Attempts())

	m.SearchOK()
	assert.True(t, m.Fail(), "scraping failures also loop back to searching")
	assert.Equal(t, StateSearching, m.Current())
	assert.Equal(t, 3, m.Attempts())

	assert.False(t, m.Fail(), "bound spent")
	assert.Equal(t, StateFailed, m.Current())
	assert.True(t, m.Terminal())
}

func TestMachineFailIgnoredOutsideActiveStates(t *testing.T) {
	m := NewMachine(3)
	assert.False(t, m.Fail(), "not started yet")
	assert.Equal(t, StateStart, m.Current())

	m.Begin()
	m.SearchOK()
	m.ScrapeOK()
	assert.False(t, m.Fail(), "reporting cannot fail back to searching")
	assert.Equal(t, StateReporting, m.Current())
}

func TestMachineMinimumOneAttempt(t *testing.T) {
	m := NewMachine(0)
	m.Begin()

	assert.False(t, m.Fail())
	assert.Equal(t, StateFailed, m.Current())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "searching", StateSearching.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}
