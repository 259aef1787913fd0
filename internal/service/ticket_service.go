package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lucianosaints/app-marica-cidadao/internal/models"
	"github.com/lucianosaints/app-marica-cidadao/internal/notify"
	"github.com/lucianosaints/app-marica-cidadao/internal/repository"
)

// Note written on the automatic creation entry.
const notaRecebimento = "Relato recebido pelo sistema. Aguardando triagem."

const notifyTimeout = 3 * time.Second

// TicketService gates every mutation of a relato: submission, status
// transitions and post-resolution feedback. Each status change appends an
// immutable history entry and triggers a citizen notification.
type TicketService struct {
	relatos    repository.RelatoRepository
	historico  repository.HistoricoRepository
	categorias repository.CategoriaRepository
	users      repository.UserRepository
	notifier   notify.Notifier
	log        zerolog.Logger
}

func NewTicketService(
	relatos repository.RelatoRepository,
	historico repository.HistoricoRepository,
	categorias repository.CategoriaRepository,
	users repository.UserRepository,
	notifier notify.Notifier,
	log zerolog.Logger,
) *TicketService {
	return &TicketService{
		relatos:    relatos,
		historico:  historico,
		categorias: categorias,
		users:      users,
		notifier:   notifier,
		log:        log,
	}
}

type SubmitInput struct {
	CategoriaID          int64
	Descricao            string
	FotoProblema         string // stored path, required
	Latitude             *float64
	Longitude            *float64
	EnderecoAproximado   string
	PropriedadePrivada   bool
	ComprovanteTit       string
	AceiteTermoAmbiental bool
}

// Submit files a new relato for the citizen. The relato starts in
// "recebido" and carries a system-generated creation entry in its history.
func (s *TicketService) Submit(ctx context.Context, cidadaoID string, in SubmitInput) (*models.Relato, error) {
	in.Descricao = strings.TrimSpace(in.Descricao)
	if in.Descricao == "" {
		return nil, validationf("descrição é obrigatória")
	}
	if in.FotoProblema == "" {
		return nil, validationf("foto do problema é obrigatória")
	}

	cat, err := s.categorias.Get(ctx, in.CategoriaID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, notFoundf("categoria %d não encontrada", in.CategoriaID)
	}

	// Ownership proof for private property is requested but not enforced;
	// triage staff reject unproven relatos manually.
	if in.PropriedadePrivada && in.ComprovanteTit == "" {
		s.log.Warn().Str("cidadao", cidadaoID).Msg("relato em propriedade privada sem comprovante de titularidade")
	}

	t := &models.Relato{
		CidadaoID:            cidadaoID,
		CategoriaID:          cat.ID,
		CategoriaNome:        cat.Nome,
		Descricao:            in.Descricao,
		FotoProblema:         in.FotoProblema,
		Latitude:             in.Latitude,
		Longitude:            in.Longitude,
		EnderecoAproximado:   strings.TrimSpace(in.EnderecoAproximado),
		PropriedadePrivada:   in.PropriedadePrivada,
		ComprovanteTit:       in.ComprovanteTit,
		AceiteTermoAmbiental: in.AceiteTermoAmbiental,
		Status:               models.StatusRecebido,
		StatusDisplay:        models.StatusLabel(models.StatusRecebido),
	}
	entry := &models.HistoricoStatus{
		Status:               models.StatusRecebido,
		ObservacaoPrefeitura: notaRecebimento,
		AtualizadoPor:        nil, // system-generated
	}

	if err := s.relatos.Create(ctx, t, entry); err != nil {
		return nil, err
	}
	t.Historico = []models.HistoricoStatus{*entry}

	s.dispatch(ctx, t, entry)
	return t, nil
}

// Transition moves the relato to newStatus and appends the matching history
// entry. Only staff may transition; any status may follow any other.
func (s *TicketService) Transition(ctx context.Context, staffID string, relatoID int64, newStatus, observacao, fotoResolucao string) (*models.HistoricoStatus, error) {
	staff, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil || !staff.IsStaff {
		return nil, forbiddenf("apenas servidores da prefeitura podem atualizar o status")
	}
	if !models.ValidStatus(newStatus) {
		return nil, validationf("status %q inválido", newStatus)
	}

	t, err := s.relatos.Get(ctx, relatoID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, notFoundf("relato %d não encontrado", relatoID)
	}

	entry := &models.HistoricoStatus{
		Status:               newStatus,
		ObservacaoPrefeitura: strings.TrimSpace(observacao),
		FotoResolucao:        fotoResolucao,
		AtualizadoPor:        &staff.ID,
	}
	if err := s.relatos.SetStatus(ctx, relatoID, newStatus, entry); err != nil {
		return nil, err
	}
	t.Status = newStatus
	t.StatusDisplay = models.StatusLabel(newStatus)

	s.dispatch(ctx, t, entry)
	return entry, nil
}

// Rate records the owning citizen's post-resolution feedback.
func (s *TicketService) Rate(ctx context.Context, cidadaoID string, relatoID int64, avaliacao int, comentario string) (*models.Relato, error) {
	t, err := s.relatos.Get(ctx, relatoID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, notFoundf("relato %d não encontrado", relatoID)
	}
	if t.Status != models.StatusResolvido {
		return nil, validationf("relato só pode ser avaliado após a resolução")
	}
	if t.CidadaoID != cidadaoID {
		return nil, forbiddenf("apenas o cidadão que abriu o relato pode avaliá-lo")
	}
	if avaliacao < 1 || avaliacao > 5 {
		return nil, validationf("avaliação deve ser de 1 a 5 estrelas")
	}

	if err := s.relatos.SetAvaliacao(ctx, relatoID, avaliacao, strings.TrimSpace(comentario)); err != nil {
		return nil, err
	}
	t.Avaliacao = &avaliacao
	t.ComentarioCidadao = strings.TrimSpace(comentario)
	return t, nil
}

// ListVisible returns every relato for staff, and only the requester's own
// relatos (newest first) for citizens.
func (s *TicketService) ListVisible(ctx context.Context, requesterID string) ([]models.Relato, error) {
	u, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, forbiddenf("usuário desconhecido")
	}
	if u.IsStaff {
		return s.relatos.ListAll(ctx)
	}
	return s.relatos.ListByCidadao(ctx, requesterID)
}

// Get returns one relato with its full timeline. Citizens may only read
// their own relatos.
func (s *TicketService) Get(ctx context.Context, requesterID string, relatoID int64) (*models.Relato, error) {
	u, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, forbiddenf("usuário desconhecido")
	}
	t, err := s.relatos.Get(ctx, relatoID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, notFoundf("relato %d não encontrado", relatoID)
	}
	if !u.IsStaff && t.CidadaoID != requesterID {
		return nil, forbiddenf("relato pertence a outro cidadão")
	}
	return t, nil
}

// History returns the relato's timeline, newest first, under the same
// visibility rules as Get.
func (s *TicketService) History(ctx context.Context, requesterID string, relatoID int64) ([]models.HistoricoStatus, error) {
	if _, err := s.Get(ctx, requesterID, relatoID); err != nil {
		return nil, err
	}
	return s.historico.ListByRelato(ctx, relatoID)
}

// dispatch sends the status notification for a freshly persisted history
// entry. Best effort: failures are logged and never surface to the caller.
func (s *TicketService) dispatch(ctx context.Context, t *models.Relato, e *models.HistoricoStatus) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	owner, err := s.users.GetByID(nctx, t.CidadaoID)
	if err != nil || owner == nil {
		s.log.Error().Err(err).Int64("relato", t.ID).Msg("notificação: dono do relato não encontrado")
		return
	}

	telefone := "Não cadastrado"
	if p, err := s.users.GetPerfil(nctx, owner.ID); err == nil && p != nil && p.Telefone != "" {
		telefone = p.Telefone
	}

	nome := owner.FirstName
	if nome == "" {
		nome = owner.Username
	}

	n := notify.Notification{
		Telefone:    telefone,
		Nome:        nome,
		RelatoID:    t.ID,
		Categoria:   t.CategoriaNome,
		StatusLabel: models.StatusLabel(e.Status),
		Observacao:  e.ObservacaoPrefeitura,
	}
	if err := s.notifier.Notify(nctx, n); err != nil {
		s.log.Error().Err(err).Int64("relato", t.ID).Msg("falha ao enviar notificação")
	}
}
