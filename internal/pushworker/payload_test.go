package pushworker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/circlepot/notifier/internal/model"
	"github.com/circlepot/notifier/internal/rabbitmq/queue"
	"github.com/circlepot/notifier/internal/routes"
)

func TestDisplayFor_FullPayload(t *testing.T) {
	n := displayFor(queue.PushMessage{
		Kind:  queue.KindPush,
		Title: "X",
		Body:  "Y",
		Tag:   "circle_started",
		Action: &model.Action{
			Label: "View Circle",
			Route: "/circles",
		},
	})

	assert.Equal(t, "X", n.Title)
	assert.Equal(t, "Y", n.Body)
	assert.Equal(t, "circle_started", n.Tag)
	assert.Equal(t, "/circles", n.Link)
}

func TestDisplayFor_EmptyPayloadDegrades(t *testing.T) {
	n := displayFor(queue.PushMessage{Kind: queue.KindPush})

	assert.Equal(t, fallbackTitle, n.Title)
	assert.Equal(t, fallbackBody, n.Body)
	assert.Equal(t, fallbackTag, n.Tag)
	assert.Equal(t, routes.Home, n.Link)
}

func TestDisplayFor_TagFallsBackToDataType(t *testing.T) {
	n := displayFor(queue.PushMessage{
		Kind:  queue.KindPush,
		Title: "X",
		Data:  map[string]string{"type": "goal_completed"},
	})

	assert.Equal(t, "goal_completed", n.Tag)
}

func TestDisplayFor_ClickTargetFromDataAction(t *testing.T) {
	n := displayFor(queue.PushMessage{
		Kind: queue.KindPush,
		Data: map[string]string{"action": `{"route":"/goals"}`},
	})
	assert.Equal(t, "/goals", n.Link)

	// Legacy bare-string actions still resolve.
	n = displayFor(queue.PushMessage{
		Kind: queue.KindPush,
		Data: map[string]string{"action": `"/transactions"`},
	})
	assert.Equal(t, "/transactions", n.Link)

	// Garbage degrades to home.
	n = displayFor(queue.PushMessage{
		Kind: queue.KindPush,
		Data: map[string]string{"action": "{broken"},
	})
	assert.Equal(t, routes.Home, n.Link)
}
