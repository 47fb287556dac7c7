// Package notify delivers settlement and operator notifications over one or
// more channels (Telegram, Discord). Delivery is best-effort per channel; a
// failing channel never blocks the others.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abrahamrubi0/bettrack/internal/domain"
)

// Event types used for channel filtering.
const (
	EventSettlement = "settlement"
	EventCritical   = "critical"
)

// Sender is one notification channel.
type Sender interface {
	// Send delivers a notification with the given title and message body.
	Send(ctx context.Context, title, message string) error
	// Name returns the channel identifier (e.g. "telegram").
	Name() string
}

// Notifier renders domain payloads into messages and dispatches them to all
// senders. A set of allowed event types filters what goes out; an empty set
// allows everything.
type Notifier struct {
	senders []Sender
	events  map[string]bool
	logger  *slog.Logger
}

// NewNotifier creates a Notifier delivering to the given senders. Only events
// whose type appears in events are forwarded; an empty list allows all.
func NewNotifier(senders []Sender, events []string, logger *slog.Logger) *Notifier {
	allowed := make(map[string]bool, len(events))
	for _, e := range events {
		if e = strings.TrimSpace(e); e != "" {
			allowed[e] = true
		}
	}
	return &Notifier{
		senders: senders,
		events:  allowed,
		logger:  logger.With(slog.String("component", "notifier")),
	}
}

// SettlementResolved sends the full settlement payload for a resolved bet,
// rendered as an indented JSON block so the scores are machine-recoverable
// from the message itself.
func (n *Notifier) SettlementResolved(ctx context.Context, s domain.Settlement) error {
	if len(n.events) > 0 && !n.events[EventSettlement] {
		return nil
	}

	body, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("notify: encode settlement: %w", err)
	}

	title := fmt.Sprintf("Bet %d settled: %s @ %s",
		s.Bet.ID, s.Teams.Away.Name, s.Teams.Home.Name)
	message := fmt.Sprintf("```json\n%s\n```", body)
	return n.dispatch(ctx, title, message)
}

// Critical sends an operator alert, bypassing the event filter only when
// "critical" is allowed or no filter is set.
func (n *Notifier) Critical(ctx context.Context, message string) error {
	if len(n.events) > 0 && !n.events[EventCritical] {
		return nil
	}
	return n.dispatch(ctx, "Bet tracker needs attention", message)
}

// dispatch fans the message out to every sender, collecting failures so one
// broken channel does not mask delivery on the rest.
func (n *Notifier) dispatch(ctx context.Context, title, message string) error {
	if len(n.senders) == 0 {
		return nil
	}

	var errs []string
	for _, s := range n.senders {
		if err := s.Send(ctx, title, message); err != nil {
			n.logger.ErrorContext(ctx, "sender failed",
				slog.String("sender", s.Name()),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Sprintf("%s: %v", s.Name(), err))
			continue
		}
		n.logger.DebugContext(ctx, "notification sent",
			slog.String("sender", s.Name()),
			slog.String("title", title),
		)
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify: %d sender(s) failed: %s", len(errs), strings.Join(errs, "; "))
	}
	return nil
}

// truncateFenced cuts text to at most max bytes while keeping any ``` code
// fence terminated. Telegram's markdown parser rejects a message with an
// unterminated entity outright, so a naive cut would make oversized
// settlements undeliverable.
func truncateFenced(text string, max int) string {
	if len(text) <= max {
		return text
	}
	const closing = "\n```"
	cut := strings.TrimRight(text[:max-len(closing)], "`")
	if strings.Count(cut, "```")%2 == 1 {
		return cut + closing
	}
	return cut
}
