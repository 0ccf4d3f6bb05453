package email

import (
	"fmt"

	"skillswap_backend/internal/logger"
)

// Notifier sends the exchange-lifecycle mails. Notification delivery is
// best-effort and never blocks or fails a core operation.
type Notifier interface {
	PropositionReceived(to, postTitle, senderName string)
	PropositionAccepted(to, postTitle string)
	ReviewReceived(to, reviewTitle string)
}

type notifier struct {
	sender Sender
}

func NewNotifier(sender Sender) Notifier {
	return &notifier{sender: sender}
}

func (n *notifier) PropositionReceived(to, postTitle, senderName string) {
	subject := "New proposition on your post"
	body := fmt.Sprintf("<p>%s sent a proposition on your post <b>%s</b>.</p>", senderName, postTitle)
	n.send(to, subject, body)
}

func (n *notifier) PropositionAccepted(to, postTitle string) {
	subject := "Your proposition was accepted"
	body := fmt.Sprintf("<p>Your proposition on the post <b>%s</b> was accepted.</p>", postTitle)
	n.send(to, subject, body)
}

func (n *notifier) ReviewReceived(to, reviewTitle string) {
	subject := "You received a review"
	body := fmt.Sprintf("<p>A member left you a review: <b>%s</b>.</p>", reviewTitle)
	n.send(to, subject, body)
}

func (n *notifier) send(to, subject, body string) {
	if err := n.sender.Send(to, subject, body); err != nil {
		logger.Warn("failed to send notification email", "to", to, "subject", subject, "error", err)
	}
}
