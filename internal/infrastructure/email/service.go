package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"rentpe.backend/internal/metrics"
	"rentpe.backend/pkg/logger"
)

// Service sends transactional mail over SMTP. When no host is configured
// every send is a logged no-op, so payment flows never depend on mail
// infrastructure being up.
type Service struct {
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

// New creates a new email service
func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass string) *Service {
	return &Service{
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

// SendPaymentReceipt mails a receipt for a recorded invoice payment.
// Failures are logged, never returned: receipts are best-effort and the
// payment has already been committed.
func (s *Service) SendPaymentReceipt(ctx context.Context, to, name, invoiceNumber string, amount, remaining decimal.Decimal, fullyPaid bool) {
	if s.smtpHost == "" {
		logger.Warn(ctx, "smtp not configured, skipping payment receipt",
			zap.String("to", to), zap.String("invoice", invoiceNumber))
		metrics.RecordEmail("payment_receipt", "skipped")
		return
	}

	status := "Partially Paid"
	closing := fmt.Sprintf("Remaining balance: %s", remaining.StringFixed(2))
	if fullyPaid {
		status = "Paid in Full"
		closing = "Your invoice is now fully settled."
	}

	subject := "Payment Received - Invoice " + invoiceNumber
	body := fmt.Sprintf(`Hi %s,

We have received your payment of %s against invoice %s.

Status: %s
%s

Thank you for renting with us!

- RentPe Team`, name, amount.StringFixed(2), invoiceNumber, status, closing)

	if err := s.send(to, subject, body); err != nil {
		logger.Error(ctx, "failed to send payment receipt",
			zap.String("to", to), zap.String("invoice", invoiceNumber), zap.Error(err))
		metrics.RecordEmail("payment_receipt", "failed")
		return
	}

	logger.Info(ctx, "payment receipt sent",
		zap.String("to", to), zap.String("invoice", invoiceNumber))
	metrics.RecordEmail("payment_receipt", "sent")
}

// SendReferralBonusNotice mails the referrer when their code earns a bonus
func (s *Service) SendReferralBonusNotice(ctx context.Context, to, name string, bonus decimal.Decimal) {
	if s.smtpHost == "" {
		metrics.RecordEmail("referral_bonus", "skipped")
		return
	}

	subject := "You earned a referral bonus!"
	body := fmt.Sprintf(`Hi %s,

Someone just signed up with your referral code. We've credited %s to your wallet.

- RentPe Team`, name, bonus.StringFixed(2))

	if err := s.send(to, subject, body); err != nil {
		logger.Error(ctx, "failed to send referral bonus notice",
			zap.String("to", to), zap.Error(err))
		metrics.RecordEmail("referral_bonus", "failed")
		return
	}
	metrics.RecordEmail("referral_bonus", "sent")
}

func (s *Service) send(to, subject, body string) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", to)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "\r\n" + body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{to}, []byte(message))
}
