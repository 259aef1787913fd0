package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lucianosaints/app-marica-cidadao/internal/models"
)

type HistoricoRepo struct{ db *pgxpool.Pool }

func NewHistoricoRepo(db *pgxpool.Pool) *HistoricoRepo { return &HistoricoRepo{db: db} }

// ListByRelato returns the full timeline of a relato, newest first.
func (r *HistoricoRepo) ListByRelato(ctx context.Context, relatoID int64) ([]models.HistoricoStatus, error) {
	return listHistorico(ctx, r.db, relatoID)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listHistorico(ctx context.Context, q querier, relatoID int64) ([]models.HistoricoStatus, error) {
	rows, err := q.Query(ctx, `
		SELECT id, relato_id, status, observacao_prefeitura, foto_resolucao, atualizado_por, data_atualizacao
		FROM historico_status
		WHERE relato_id = $1
		ORDER BY data_atualizacao DESC, id DESC
	`, relatoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HistoricoStatus
	for rows.Next() {
		var e models.HistoricoStatus
		if err := rows.Scan(
			&e.ID, &e.RelatoID, &e.Status, &e.ObservacaoPrefeitura,
			&e.FotoResolucao, &e.AtualizadoPor, &e.DataAtualizacao,
		); err != nil {
			return nil, err
		}
		e.StatusDisplay = models.StatusLabel(e.Status)
		out = append(out, e)
	}
	return out, rows.Err()
}
