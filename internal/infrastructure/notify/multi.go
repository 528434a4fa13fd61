package notify

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/pkg/config"
)

var _ inventory.ExpiryNotifier = (*MultiNotifier)(nil)

// MultiNotifier reparte cada aviso entre todos los canales configurados.
// La falla de un canal no impide el envío por los demás.
type MultiNotifier struct {
	channels []inventory.ExpiryNotifier
}

// NewMultiNotifier agrupa canales; los nil se descartan.
func NewMultiNotifier(channels ...inventory.ExpiryNotifier) *MultiNotifier {
	m := &MultiNotifier{}
	for _, c := range channels {
		if c != nil {
			m.channels = append(m.channels, c)
		}
	}
	return m
}

// FromConfig construye los canales con configuración completa (Telegram, SMTP).
// Devuelve nil si no hay ningún canal habilitado.
func FromConfig(tg config.TelegramConfig, smtp config.SMTPConfig, log zerolog.Logger) inventory.ExpiryNotifier {
	var channels []inventory.ExpiryNotifier
	if tg.Enabled() {
		channels = append(channels, NewTelegramNotifier(tg.BotToken, tg.ChatID, tg.APIURL, log.With().Str("channel", "telegram").Logger()))
	} else {
		log.Info().Msg("Telegram sin configurar, canal omitido")
	}
	if smtp.Enabled() {
		channels = append(channels, NewEmailNotifier(smtp, log.With().Str("channel", "email").Logger()))
	} else {
		log.Info().Msg("SMTP sin configurar, canal omitido")
	}
	if len(channels) == 0 {
		return nil
	}
	m := NewMultiNotifier(channels...)
	log.Info().Int("channels", m.Len()).Msg("avisos de vencimiento configurados")
	return m
}

// Len cantidad de canales activos.
func (m *MultiNotifier) Len() int { return len(m.channels) }

// NotifyExpiringLots envía por cada canal y junta los errores.
func (m *MultiNotifier) NotifyExpiringLots(ctx context.Context, lots []*entity.ExpiringLot, days int) error {
	var errs []error
	for _, c := range m.channels {
		if err := c.NotifyExpiringLots(ctx, lots, days); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
