package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/infrastructure/notify"
	"github.com/jhoicas/lotes-api/pkg/config"
)

func expiring(name, owner string, qty int) *entity.ExpiringLot {
	return &entity.ExpiringLot{
		Lot: entity.Lot{
			ID: "l-" + name, ProductID: "p1", StockID: "s-1", BatchCode: "AB-12",
			ExpiryDate: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), InitialQuantity: qty, Quantity: qty,
		},
		ProductName:  name,
		ProductBrand: "Itambé",
		StockName:    "Depósito (central)",
		OwnerEmail:   owner,
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	got := notify.EscapeMarkdownV2("Produto *novo* (teste)!")
	assert.Equal(t, `Produto \*novo\* \(teste\)\!`, got)
	assert.Equal(t, `a\\b\_c\.`, notify.EscapeMarkdownV2(`a\b_c.`))
	assert.Equal(t, "plain", notify.EscapeMarkdownV2("plain"))
}

func TestExpiringLotsMarkdown(t *testing.T) {
	msg := notify.ExpiringLotsMarkdown([]*entity.ExpiringLot{expiring("Leite", "", 1250)}, 7)

	assert.True(t, strings.HasPrefix(msg, "*⚠️ Aviso: Lotes vencendo em 7 dias:*"))
	assert.Contains(t, msg, "Produto: *Leite*")
	assert.Contains(t, msg, "ID Estoque: *s\\-1*")
	assert.Contains(t, msg, "Nome Estoque: *Depósito \\(central\\)*")
	assert.Contains(t, msg, "Quantidade: *1\\.250*")
	assert.Contains(t, msg, "Lote do fabricante: *AB\\-12*")
	assert.Contains(t, msg, "Validade: `2025\\-01\\-08`")
}

func TestTelegramNotifier_Sends(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := notify.NewTelegramNotifier("TOKEN", "42", srv.URL, zerolog.Nop())
	err := n.NotifyExpiringLots(context.Background(), []*entity.ExpiringLot{expiring("Leite", "", 3)}, 3)
	require.NoError(t, err)
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "MarkdownV2", got["parse_mode"])
	assert.Contains(t, got["text"], "Produto: *Leite*")
}

func TestTelegramNotifier_EmptyListSendsNothing(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := notify.NewTelegramNotifier("TOKEN", "42", srv.URL, zerolog.Nop())
	require.NoError(t, n.NotifyExpiringLots(context.Background(), nil, 7))
	assert.Zero(t, calls)
}

func TestTelegramNotifier_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: can't parse entities"}`))
	}))
	defer srv.Close()

	n := notify.NewTelegramNotifier("TOKEN", "42", srv.URL, zerolog.Nop())
	err := n.NotifyExpiringLots(context.Background(), []*entity.ExpiringLot{expiring("Leite", "", 3)}, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't parse entities")
}

func TestTelegramNotifier_SplitsLongMessages(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.LessOrEqual(t, len([]rune(body["text"])), 4096)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	lots := make([]*entity.ExpiringLot, 0, 60)
	for i := 0; i < 60; i++ {
		lots = append(lots, expiring(strings.Repeat("x", 40), "", i+1))
	}
	n := notify.NewTelegramNotifier("TOKEN", "42", srv.URL, zerolog.Nop())
	require.NoError(t, n.NotifyExpiringLots(context.Background(), lots, 14))
	assert.Greater(t, calls, 1)
}

type mockSender struct{ mock.Mock }

func (m *mockSender) DialAndSend(msgs ...*gomail.Message) error {
	args := m.Called(len(msgs))
	return args.Error(0)
}

func TestEmailNotifier_OneMailPerOwner(t *testing.T) {
	sender := new(mockSender)
	sender.On("DialAndSend", 1).Return(nil).Twice()

	n := notify.NewEmailNotifierWithSender(sender, "avisos@lotes.app", zerolog.Nop())
	err := n.NotifyExpiringLots(context.Background(), []*entity.ExpiringLot{
		expiring("Leite", "ana@example.com", 3),
		expiring("Queijo", "bea@example.com", 2),
		expiring("Iogurte", "ana@example.com", 1),
		expiring("Sem dono", "", 1),
	}, 20)
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestEmailNotifier_JoinsErrors(t *testing.T) {
	sender := new(mockSender)
	sender.On("DialAndSend", 1).Return(errors.New("smtp down"))

	n := notify.NewEmailNotifierWithSender(sender, "avisos@lotes.app", zerolog.Nop())
	err := n.NotifyExpiringLots(context.Background(), []*entity.ExpiringLot{expiring("Leite", "ana@example.com", 3)}, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ana@example.com")
}

type stubChannel struct {
	err   error
	calls int
}

func (s *stubChannel) NotifyExpiringLots(context.Context, []*entity.ExpiringLot, int) error {
	s.calls++
	return s.err
}

func TestMultiNotifier_FansOutDespiteFailures(t *testing.T) {
	bad := &stubChannel{err: errors.New("boom")}
	good := &stubChannel{}
	m := notify.NewMultiNotifier(bad, nil, good)
	assert.Equal(t, 2, m.Len())

	err := m.NotifyExpiringLots(context.Background(), []*entity.ExpiringLot{expiring("Leite", "", 1)}, 7)
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, bad.calls)
	assert.Equal(t, 1, good.calls)
}

func TestFromConfig_SkipsUnconfiguredChannels(t *testing.T) {
	assert.Nil(t, notify.FromConfig(config.TelegramConfig{}, config.SMTPConfig{}, zerolog.Nop()))

	n := notify.FromConfig(config.TelegramConfig{BotToken: "t", ChatID: "1"}, config.SMTPConfig{}, zerolog.Nop())
	require.NotNil(t, n)
	m, ok := n.(*notify.MultiNotifier)
	require.True(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestFromConfig_LogsActiveChannels(t *testing.T) {
	var buf bytes.Buffer
	n := notify.FromConfig(
		config.TelegramConfig{BotToken: "t", ChatID: "1"},
		config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "avisos@example.com"},
		zerolog.New(&buf),
	)
	require.NotNil(t, n)
	assert.Contains(t, buf.String(), `"channels":2`)
}
