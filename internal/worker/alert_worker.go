package worker

// alert_worker.go
// Processes low-stock alert jobs from QueueStockAlerts.
// Sends a notification mail to the configured warehouse recipient.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Nikjeremic/potrosnjaSmole/internal/infra"

	"github.com/rs/zerolog/log"
)

// StockAlertPayload is the job body enqueued by the stock ledger.
type StockAlertPayload struct {
	MaterialID      string `json:"materialId"`
	MaterialName    string `json:"materialName"`
	AvailableWeight string `json:"availableWeight"`
	Unit            string `json:"unit"`
}

// AlertWorker delivers low-stock notifications via SMTP, behind a circuit
// breaker so a dead relay does not keep the retry loop spinning.
type AlertWorker struct {
	mailer    *infra.Mailer
	cb        *infra.CircuitBreaker
	recipient string
}

func NewAlertWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, recipient string) *AlertWorker {
	return &AlertWorker{mailer: mailer, cb: cb, recipient: recipient}
}

// Process sends one low-stock notification. Returning an error triggers the
// pool's retry/DLQ handling.
func (w *AlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload StockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Malformed payloads are unrecoverable — log and drop.
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return nil
	}
	if w.recipient == "" {
		log.Warn().Msg("alert_worker: no recipient configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("Upozorenje: niske zalihe — %s", payload.MaterialName)
	body := fmt.Sprintf(
		"Materijal %s je pao ispod praga zaliha.\n\nTrenutno dostupno: %s %s\n\nPotrebno je naručiti novu isporuku.",
		payload.MaterialName, payload.AvailableWeight, payload.Unit,
	)

	err := w.cb.Execute(func() error {
		return w.mailer.Send(w.recipient, subject, body)
	})
	if err != nil {
		log.Error().Err(err).Str("material", payload.MaterialName).Msg("alert_worker: failed to send alert")
		return err
	}
	log.Info().Str("material", payload.MaterialName).Msg("alert_worker: low stock alert sent")
	return nil
}
