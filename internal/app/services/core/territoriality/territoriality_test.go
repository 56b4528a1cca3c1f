package territoriality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermine(t *testing.T) {
	tests := []struct {
		name      string
		residence string
		current   string
		months    int
		transfer  bool
		signal    bool
	}{
		{"same country short stay", "GA", "GA", 0, false, false},
		{"same country long stay", "GA", "GA", 24, false, false},
		{"codes differing only in case are distinct countries", "ga", "GA", 12, true, false},
		{"trailing space is a distinct country", "GA", "GA ", 3, false, true},
		{"abroad long stay transfers", "GA", "FR", 12, true, false},
		{"abroad exactly at threshold transfers", "GA", "FR", 6, true, false},
		{"abroad just under threshold signals", "GA", "FR", 5, false, true},
		{"abroad just arrived signals", "GA", "FR", 0, false, true},
		{"negative duration signals", "GA", "FR", -1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Determine(tt.residence, tt.current, tt.months)

			assert.Equal(t, tt.transfer, decision.ShouldTransferToCurrentLocation)
			assert.Equal(t, tt.signal, decision.ShouldSignalToCurrentLocation)
			assert.NotEmpty(t, decision.Reason)
		})
	}
}

func TestDetermine_FlagsAreExclusive(t *testing.T) {
	for months := -2; months <= 30; months++ {
		for _, pair := range [][2]string{{"GA", "GA"}, {"GA", "FR"}, {"FR", "US"}} {
			decision := Determine(pair[0], pair[1], months)
			assert.False(t, decision.ShouldTransferToCurrentLocation && decision.ShouldSignalToCurrentLocation)
		}
	}
}

func TestDetermine_ReasonNamesBothCountries(t *testing.T) {
	decision := Determine("GA", "FR", 8)

	assert.Contains(t, decision.Reason, "GA")
	assert.Contains(t, decision.Reason, "FR")
	assert.Contains(t, decision.Reason, "8 mois")
}
