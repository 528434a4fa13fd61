package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que TelegramNotifier implementa ExpiryNotifier.
var _ inventory.ExpiryNotifier = (*TelegramNotifier)(nil)

const defaultTelegramAPIURL = "https://api.telegram.org"

// telegramMaxMessage límite de caracteres de sendMessage.
const telegramMaxMessage = 4096

// TelegramNotifier envía los avisos a un chat usando la Bot API (sendMessage).
// Usa net/http de la librería estándar; no requiere SDK.
type TelegramNotifier struct {
	token      string
	chatID     string
	apiURL     string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewTelegramNotifier construye el adaptador. apiURL vacío usa la API pública.
func NewTelegramNotifier(token, chatID, apiURL string, log zerolog.Logger) *TelegramNotifier {
	if apiURL == "" {
		apiURL = defaultTelegramAPIURL
	}
	return &TelegramNotifier{
		token:      token,
		chatID:     chatID,
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

type telegramRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// NotifyExpiringLots envía un mensaje con los lotes; lista vacía no envía nada.
// Si el texto supera el límite de Telegram se parte en varios mensajes por lote.
func (n *TelegramNotifier) NotifyExpiringLots(ctx context.Context, lots []*entity.ExpiringLot, days int) error {
	if len(lots) == 0 {
		return nil
	}
	for _, chunk := range chunkLots(lots, days) {
		if err := n.send(ctx, ExpiringLotsMarkdown(chunk, days)); err != nil {
			return err
		}
	}
	n.log.Debug().Int("days", days).Int("lots", len(lots)).Msg("aviso enviado a Telegram")
	return nil
}

// chunkLots agrupa lotes de forma que cada mensaje quede bajo el límite.
func chunkLots(lots []*entity.ExpiringLot, days int) [][]*entity.ExpiringLot {
	var chunks [][]*entity.ExpiringLot
	var cur []*entity.ExpiringLot
	for _, l := range lots {
		next := append(cur[:len(cur):len(cur)], l)
		if len(cur) > 0 && len([]rune(ExpiringLotsMarkdown(next, days))) > telegramMaxMessage {
			chunks = append(chunks, cur)
			cur = []*entity.ExpiringLot{l}
			continue
		}
		cur = next
	}
	if len(cur) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}

func (n *TelegramNotifier) send(ctx context.Context, text string) error {
	body, err := json.Marshal(telegramRequest{ChatID: n.chatID, Text: text, ParseMode: "MarkdownV2"})
	if err != nil {
		return fmt.Errorf("telegram: serializar request: %w", err)
	}
	url := n.apiURL + "/bot" + n.token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: construir request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: llamada HTTP: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("telegram: leer respuesta: %w", err)
	}
	var tr telegramResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		return fmt.Errorf("telegram: HTTP %d: respuesta no JSON: %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || !tr.OK {
		return fmt.Errorf("telegram: HTTP %d: %s", resp.StatusCode, tr.Description)
	}
	return nil
}
