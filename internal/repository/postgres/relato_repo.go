package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lucianosaints/app-marica-cidadao/internal/models"
)

type RelatoRepo struct{ db *pgxpool.Pool }

func NewRelatoRepo(db *pgxpool.Pool) *RelatoRepo { return &RelatoRepo{db: db} }

const relatoColumns = `
	r.id, r.cidadao_id, r.categoria_id, c.nome, r.descricao, r.foto_problema,
	r.latitude, r.longitude, r.endereco_aproximado, r.e_propriedade_privada,
	r.comprovante_titularidade, r.aceite_termo_ambiental, r.status_atual,
	r.avaliacao, r.comentario_cidadao, r.criado_em, r.atualizado_em`

func scanRelato(row pgx.Row) (*models.Relato, error) {
	var t models.Relato
	err := row.Scan(
		&t.ID, &t.CidadaoID, &t.CategoriaID, &t.CategoriaNome, &t.Descricao, &t.FotoProblema,
		&t.Latitude, &t.Longitude, &t.EnderecoAproximado, &t.PropriedadePrivada,
		&t.ComprovanteTit, &t.AceiteTermoAmbiental, &t.Status,
		&t.Avaliacao, &t.ComentarioCidadao, &t.CriadoEm, &t.AtualizadoEm,
	)
	if err != nil {
		return nil, err
	}
	t.StatusDisplay = models.StatusLabel(t.Status)
	return &t, nil
}

// Create inserts the relato and its creation history entry in one
// transaction, so no relato ever exists without its first timeline row.
func (r *RelatoRepo) Create(ctx context.Context, t *models.Relato, initial *models.HistoricoStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO relatos (
			cidadao_id, categoria_id, descricao, foto_problema, latitude, longitude,
			endereco_aproximado, e_propriedade_privada, comprovante_titularidade,
			aceite_termo_ambiental, status_atual
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, criado_em, atualizado_em
	`,
		t.CidadaoID, t.CategoriaID, t.Descricao, t.FotoProblema, t.Latitude, t.Longitude,
		t.EnderecoAproximado, t.PropriedadePrivada, t.ComprovanteTit,
		t.AceiteTermoAmbiental, t.Status,
	).Scan(&t.ID, &t.CriadoEm, &t.AtualizadoEm)
	if err != nil {
		return err
	}

	initial.RelatoID = t.ID
	if err := insertHistorico(ctx, tx, initial); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *RelatoRepo) Get(ctx context.Context, id int64) (*models.Relato, error) {
	t, err := scanRelato(r.db.QueryRow(ctx, `
		SELECT`+relatoColumns+`
		FROM relatos r
		JOIN categorias c ON c.id = r.categoria_id
		WHERE r.id = $1
	`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	hist, err := listHistorico(ctx, r.db, t.ID)
	if err != nil {
		return nil, err
	}
	t.Historico = hist
	return t, nil
}

func (r *RelatoRepo) ListAll(ctx context.Context) ([]models.Relato, error) {
	return r.list(ctx, `
		SELECT`+relatoColumns+`
		FROM relatos r
		JOIN categorias c ON c.id = r.categoria_id
		ORDER BY r.criado_em DESC, r.id DESC
	`)
}

func (r *RelatoRepo) ListByCidadao(ctx context.Context, cidadaoID string) ([]models.Relato, error) {
	return r.list(ctx, `
		SELECT`+relatoColumns+`
		FROM relatos r
		JOIN categorias c ON c.id = r.categoria_id
		WHERE r.cidadao_id = $1
		ORDER BY r.criado_em DESC, r.id DESC
	`, cidadaoID)
}

func (r *RelatoRepo) list(ctx context.Context, sql string, args ...any) ([]models.Relato, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Relato
	for rows.Next() {
		t, err := scanRelato(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// SetStatus updates the relato's current status and appends the matching
// history entry atomically.
func (r *RelatoRepo) SetStatus(ctx context.Context, relatoID int64, status string, entry *models.HistoricoStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
		UPDATE relatos SET status_atual=$1, atualizado_em=now() WHERE id=$2
	`, status, relatoID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	entry.RelatoID = relatoID
	entry.Status = status
	if err := insertHistorico(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *RelatoRepo) SetAvaliacao(ctx context.Context, relatoID int64, avaliacao int, comentario string) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE relatos SET avaliacao=$1, comentario_cidadao=$2, atualizado_em=now() WHERE id=$3
	`, avaliacao, comentario, relatoID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func insertHistorico(ctx context.Context, tx pgx.Tx, e *models.HistoricoStatus) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO historico_status (relato_id, status, observacao_prefeitura, foto_resolucao, atualizado_por)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, data_atualizacao
	`, e.RelatoID, e.Status, e.ObservacaoPrefeitura, e.FotoResolucao, e.AtualizadoPor).
		Scan(&e.ID, &e.DataAtualizacao)
	if err == nil {
		e.StatusDisplay = models.StatusLabel(e.Status)
	}
	return err
}
