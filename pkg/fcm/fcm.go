// Package fcm wraps Firebase Cloud Messaging webpush delivery.
package fcm

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// ErrTokenInvalid reports that the platform has discarded the registration
// behind a token. The caller should drop the subscription and re-negotiate on
// next use.
var ErrTokenInvalid = fmt.Errorf("push token no longer registered")

// Client wraps Firebase Cloud Messaging functionality.
type Client struct {
	messagingClient *messaging.Client
}

// NewClient creates a new FCM client using the provided credentials file.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &Client{messagingClient: messagingClient}, nil
}

// Notification is one OS-level notification to display.
//
// Tag is the OS's replacement key: a newer notification with the same tag
// replaces the older one on the device. This is last-write-wins display
// grouping, not at-most-once delivery.
type Notification struct {
	Title string
	Body  string
	Icon  string
	Badge string
	Tag   string
	Link  string            // URL opened when the notification is clicked
	Data  map[string]string // custom data payload
}

// Send displays a notification on the device behind token.
func (c *Client) Send(ctx context.Context, token string, n Notification) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: n.Title,
				Body:  n.Body,
				Icon:  n.Icon,
				Badge: n.Badge,
				Tag:   n.Tag,
			},
		},
	}

	if n.Link != "" {
		message.Webpush.FCMOptions = &messaging.WebpushFCMOptions{Link: n.Link}
	}

	if _, err := c.messagingClient.Send(ctx, message); err != nil {
		if isTokenInvalid(err) {
			return ErrTokenInvalid
		}

		return fmt.Errorf("failed to send FCM message: %w", err)
	}

	return nil
}

// isTokenInvalid detects the FCM responses that mean the platform discarded
// the registration behind the token.
func isTokenInvalid(err error) bool {
	if messaging.IsUnregistered(err) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "registration-token-not-registered") ||
		strings.Contains(msg, "invalid-registration-token")
}
