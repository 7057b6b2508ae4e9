package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/circlepot/notifier/internal/model"
)

func TestActionForType(t *testing.T) {
	action := ActionForType(model.TypeContributionDue)
	assert.Equal(t, "Contribute", action.Label)
	assert.Equal(t, Circles, action.Route)

	// Unknown types route home.
	action = ActionForType("something_new")
	assert.Equal(t, "Open App", action.Label)
	assert.Equal(t, Home, action.Route)
}

func TestTypeRoutes_ReturnsCopy(t *testing.T) {
	table := TypeRoutes()
	table[model.TypeCircleStarted] = model.Action{Label: "mutated", Route: "/nowhere"}

	assert.Equal(t, "View Circle", ActionForType(model.TypeCircleStarted).Label)
}

func TestResolveClickTarget(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "object with route", raw: `{"label":"View Circle","route":"/circles"}`, want: "/circles"},
		{name: "object with action field", raw: `{"action":"/goals"}`, want: "/goals"},
		{name: "legacy bare string", raw: `"/transactions"`, want: "/transactions"},
		{name: "empty", raw: "", want: Home},
		{name: "garbage", raw: "{nope", want: Home},
		{name: "empty object", raw: "{}", want: Home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveClickTarget(tt.raw))
		})
	}
}
