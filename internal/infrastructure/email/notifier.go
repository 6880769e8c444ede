// Package email sends buyer-facing order notifications over SMTP.
package email

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"gately/internal/shared/config"
	"gately/internal/shared/logger"
)

// OrderSummary is the notification payload: everything the buyer email
// needs without reaching back into the domain.
type OrderSummary struct {
	OrderID      uint
	LookupToken  string
	EventName    string
	BuyerName    string
	BuyerEmail   string
	TotalAmount  int64
	Currency     string
	TicketCount  int
	DiscountUsed bool
}

// OrderNotifier delivers buyer notifications. Delivery failures never fail
// the business operation; implementations log and move on.
type OrderNotifier interface {
	NotifyOrderConfirmed(summary OrderSummary)
	NotifyOrderCancelled(summary OrderSummary)
}

// SMTPOrderNotifier sends order emails through an SMTP relay.
type SMTPOrderNotifier struct {
	cfg    *config.EmailConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewSMTPOrderNotifier(cfg *config.EmailConfig, log logger.Interface) *SMTPOrderNotifier {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPOrderNotifier{
		cfg:    cfg,
		dialer: dialer,
		logger: log,
	}
}

// NotifyOrderConfirmed sends the purchase confirmation with the order's
// public lookup token.
func (n *SMTPOrderNotifier) NotifyOrderConfirmed(summary OrderSummary) {
	subject := fmt.Sprintf("Your tickets for %s", summary.EventName)
	body := n.renderConfirmation(summary)

	if err := n.send(summary.BuyerEmail, subject, body); err != nil {
		n.logger.Errorw("failed to send order confirmation email",
			"order_id", summary.OrderID, "error", err)
	}
}

// NotifyOrderCancelled informs the buyer their order was cancelled.
func (n *SMTPOrderNotifier) NotifyOrderCancelled(summary OrderSummary) {
	subject := fmt.Sprintf("Your order for %s was cancelled", summary.EventName)
	body := n.renderCancellation(summary)

	if err := n.send(summary.BuyerEmail, subject, body); err != nil {
		n.logger.Errorw("failed to send order cancellation email",
			"order_id", summary.OrderID, "error", err)
	}
}

func (n *SMTPOrderNotifier) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.cfg.FromAddress, n.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (n *SMTPOrderNotifier) renderConfirmation(s OrderSummary) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<h2>Thanks for your order, %s!</h2>", s.BuyerName)
	fmt.Fprintf(&b, "<p>Your %d ticket(s) for <strong>%s</strong> are confirmed.</p>", s.TicketCount, s.EventName)
	fmt.Fprintf(&b, "<p>Order reference: <strong>%s</strong></p>", s.LookupToken)
	fmt.Fprintf(&b, "<p>Total paid: %d %s</p>", s.TotalAmount, s.Currency)
	if s.DiscountUsed {
		b.WriteString("<p>A discount code was applied to this order.</p>")
	}
	b.WriteString("<p>Show the QR code on each ticket at the venue entrance.</p>")
	b.WriteString("</body></html>")
	return b.String()
}

func (n *SMTPOrderNotifier) renderCancellation(s OrderSummary) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<h2>Order cancelled</h2>")
	fmt.Fprintf(&b, "<p>Hi %s, your order <strong>%s</strong> for %s has been cancelled.</p>", s.BuyerName, s.LookupToken, s.EventName)
	b.WriteString("<p>If a payment was captured it will be refunded to the original method.</p>")
	b.WriteString("</body></html>")
	return b.String()
}

// NoopOrderNotifier is used when email delivery is disabled.
type NoopOrderNotifier struct{}

func NewNoopOrderNotifier() *NoopOrderNotifier {
	return &NoopOrderNotifier{}
}

func (n *NoopOrderNotifier) NotifyOrderConfirmed(summary OrderSummary) {}

func (n *NoopOrderNotifier) NotifyOrderCancelled(summary OrderSummary) {}
