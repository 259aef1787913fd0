package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lucianosaints/app-marica-cidadao/internal/models"
)

type CategoriaRepo struct{ db *pgxpool.Pool }

func NewCategoriaRepo(db *pgxpool.Pool) *CategoriaRepo { return &CategoriaRepo{db: db} }

func (r *CategoriaRepo) List(ctx context.Context) ([]models.Categoria, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, nome, descricao, emoji, tempo_estimado_resolucao
		FROM categorias
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Categoria
	for rows.Next() {
		var c models.Categoria
		if err := rows.Scan(&c.ID, &c.Nome, &c.Descricao, &c.Emoji, &c.TempoEstimadoResolucao); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoriaRepo) Get(ctx context.Context, id int64) (*models.Categoria, error) {
	var c models.Categoria
	err := r.db.QueryRow(ctx, `
		SELECT id, nome, descricao, emoji, tempo_estimado_resolucao
		FROM categorias WHERE id=$1
	`, id).Scan(&c.ID, &c.Nome, &c.Descricao, &c.Emoji, &c.TempoEstimadoResolucao)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
