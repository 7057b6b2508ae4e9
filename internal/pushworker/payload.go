package pushworker

import (
	"github.com/circlepot/notifier/internal/rabbitmq/queue"
	"github.com/circlepot/notifier/internal/routes"
	"github.com/circlepot/notifier/pkg/fcm"
)

// Display defaults for payloads that arrive with fields missing. A partial or
// even empty payload still produces a visible notification.
const (
	fallbackTitle = "Circlepot Notification"
	fallbackBody  = "You have a new notification"
	fallbackTag   = "general"
)

// displayFor shapes a queue payload into the OS notification to show. Every
// field degrades independently so a sparse payload never drops the message.
func displayFor(msg queue.PushMessage) fcm.Notification {
	title := msg.Title
	if title == "" {
		title = fallbackTitle
	}

	body := msg.Body
	if body == "" {
		body = fallbackBody
	}

	tag := msg.Tag
	if tag == "" {
		tag = msg.Data["type"]
	}
	if tag == "" {
		tag = fallbackTag
	}

	return fcm.Notification{
		Title: title,
		Body:  body,
		Icon:  msg.Icon,
		Badge: msg.Badge,
		Tag:   tag,
		Link:  clickTarget(msg),
		Data:  msg.Data,
	}
}

// clickTarget resolves where a click on the notification should navigate,
// preferring the structured action over the raw data field.
func clickTarget(msg queue.PushMessage) string {
	if msg.Action != nil && msg.Action.Route != "" {
		return msg.Action.Route
	}

	if raw, ok := msg.Data["action"]; ok {
		return routes.ResolveClickTarget(raw)
	}

	return routes.Home
}
