// Package notify posts swap lifecycle events to Slack so approvers see new
// requests without polling the pending list.
package notify

import (
	"fmt"
	"log"

	"github.com/shiftledger/shiftledger/internal/database"
	"github.com/slack-go/slack"
)

// SlackNotifier posts swap events to a single channel. Failures are logged
// and swallowed: notification is best-effort and must never fail the
// operation that triggered it.
type SlackNotifier struct {
	client  *slack.Client
	channel string
}

// NewSlackNotifier creates a notifier for the given bot token and channel.
func NewSlackNotifier(botToken, channel string) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(botToken),
		channel: channel,
	}
}

// SwapSubmitted announces a new pending request.
func (n *SlackNotifier) SwapSubmitted(req *database.SwapRequest, agentAName, agentBName string) {
	var text string
	if req.SwapType == database.SwapTypeSwap {
		text = fmt.Sprintf("New swap request %s: %s ⇄ %s on %s (%s → %s / %s → %s)",
			req.UUID, agentAName, agentBName, req.ShiftDate,
			req.OriginalShiftA, req.RequestedShiftA, req.OriginalShiftB, req.RequestedShiftB)
	} else {
		text = fmt.Sprintf("New shift update request %s: %s on %s (%s → %s)",
			req.UUID, agentAName, req.ShiftDate, req.OriginalShiftA, req.RequestedShiftA)
	}
	n.post(text)
}

// SwapResolved announces an approval or rejection.
func (n *SlackNotifier) SwapResolved(req *database.SwapRequest) {
	n.post(fmt.Sprintf("Swap request %s %s by %s", req.UUID, req.Status, req.ReviewedBy))
}

func (n *SlackNotifier) post(text string) {
	_, _, err := n.client.PostMessage(n.channel, slack.MsgOptionText(text, false))
	if err != nil {
		log.Printf("Warning: failed to post swap notification to Slack: %v", err)
	}
}
