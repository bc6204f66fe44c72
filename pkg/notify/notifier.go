// Package notify delivers maintenance records to a Slack channel as
// Block Kit messages, one message per record.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/younsl/rdsmaint/internal/models"
)

// SlackAPI is the subset of the Slack Web API the notifier calls.
// *slack.Client satisfies it.
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Notifier posts one message per maintenance record, synchronously,
// in input order.
type Notifier struct {
	client  SlackAPI
	channel string

	// bestEffort keeps delivering after a failed send and reports
	// the accumulated errors at the end. When false the first
	// failure aborts the remaining sends.
	bestEffort bool

	log zerolog.Logger
}

// NewNotifier creates a Notifier authenticated with the given bearer
// token.
func NewNotifier(token, channel string, bestEffort bool, log zerolog.Logger) *Notifier {
	return &Notifier{
		client:     slack.New(token),
		channel:    channel,
		bestEffort: bestEffort,
		log:        log,
	}
}

// NewNotifierFromClient creates a Notifier backed by an existing
// client. Used by tests.
func NewNotifierFromClient(client SlackAPI, channel string, bestEffort bool, log zerolog.Logger) *Notifier {
	return &Notifier{
		client:     client,
		channel:    channel,
		bestEffort: bestEffort,
		log:        log,
	}
}

// Notify delivers every record to the configured channel. No batching,
// no rate limiting, no retry.
func (n *Notifier) Notify(ctx context.Context, records []models.MaintenanceRecord) error {
	var errs []error

	for _, record := range records {
		_, _, err := n.client.PostMessageContext(ctx, n.channel, slack.MsgOptionBlocks(BuildMessageBlocks(record)...))
		if err != nil {
			err = fmt.Errorf("failed to deliver maintenance message for %s: %w", record.InstanceID, err)
			if !n.bestEffort {
				return err
			}
			n.log.Error().Err(err).Str("instance_id", record.InstanceID).Msg("message delivery failed, continuing")
			errs = append(errs, err)
			continue
		}

		n.log.Debug().
			Str("instance_id", record.InstanceID).
			Str("action", record.Action).
			Str("priority", string(record.Priority())).
			Msg("maintenance message delivered")
	}

	return errors.Join(errs...)
}
