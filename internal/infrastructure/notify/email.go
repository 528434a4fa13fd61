package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/pkg/config"
)

var _ inventory.ExpiryNotifier = (*EmailNotifier)(nil)

// MailSender abstrae el envío SMTP; *gomail.Dialer lo implementa.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier envía a cada dueño de stock un correo con sus lotes por vencer.
type EmailNotifier struct {
	sender MailSender
	from   string
	log    zerolog.Logger
}

// NewEmailNotifier construye el canal de correo desde la configuración SMTP.
func NewEmailNotifier(cfg config.SMTPConfig, log zerolog.Logger) *EmailNotifier {
	return NewEmailNotifierWithSender(gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), cfg.From, log)
}

// NewEmailNotifierWithSender permite inyectar el sender (tests).
func NewEmailNotifierWithSender(sender MailSender, from string, log zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{sender: sender, from: from, log: log}
}

// NotifyExpiringLots agrupa por email del dueño y envía un correo por destinatario.
// Lotes sin email de dueño se omiten.
func (n *EmailNotifier) NotifyExpiringLots(ctx context.Context, lots []*entity.ExpiringLot, days int) error {
	byOwner := make(map[string][]*entity.ExpiringLot)
	var order []string
	for _, l := range lots {
		if l.OwnerEmail == "" {
			continue
		}
		if _, ok := byOwner[l.OwnerEmail]; !ok {
			order = append(order, l.OwnerEmail)
		}
		byOwner[l.OwnerEmail] = append(byOwner[l.OwnerEmail], l)
	}

	var errs []error
	for _, to := range order {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		m := gomail.NewMessage()
		m.SetHeader("From", n.from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", fmt.Sprintf("Aviso: lotes vencendo em %d dias", days))
		m.SetBody("text/plain", ExpiringLotsText(byOwner[to], days))
		if err := n.sender.DialAndSend(m); err != nil {
			errs = append(errs, fmt.Errorf("email a %s: %w", to, err))
			continue
		}
		n.log.Debug().Str("to", to).Int("days", days).Int("lots", len(byOwner[to])).Msg("aviso enviado por email")
	}
	return errors.Join(errs...)
}
