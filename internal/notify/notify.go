// Package notify delivers citizen-facing status messages. The channel is
// abstracted behind Notifier; the default implementation simulates a
// WhatsApp gateway by writing the message to the log.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Notification is one status-change message addressed to the relato's owner.
type Notification struct {
	Telefone    string // "Não cadastrado" when the citizen has no phone on file
	Nome        string // first name, falling back to username
	RelatoID    int64
	Categoria   string
	StatusLabel string
	Observacao  string // staff note, may be empty
}

// Mensagem renders the citizen-facing message body.
func (n Notification) Mensagem() string {
	return fmt.Sprintf("Olá %s, o status do seu relato #%d (%s) mudou para: %s.",
		n.Nome, n.RelatoID, n.Categoria, n.StatusLabel)
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes the message to the application log, standing in for a
// real SMS/WhatsApp gateway.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Notify(ctx context.Context, n Notification) error {
	ev := l.log.Info().
		Str("canal", "whatsapp-simulado").
		Str("para", n.Telefone).
		Int64("relato", n.RelatoID).
		Str("mensagem", n.Mensagem())
	if n.Observacao != "" {
		ev = ev.Str("observacao_prefeitura", n.Observacao)
	}
	ev.Msg("notificação enviada")
	return nil
}
