package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	username TEXT UNIQUE NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	first_name TEXT NOT NULL DEFAULT '',
	password_h TEXT NOT NULL,
	is_staff BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS perfis_cidadao (
	user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	cpf TEXT UNIQUE NOT NULL,
	telefone TEXT NOT NULL DEFAULT '',
	data_nascimento DATE,
	cep TEXT NOT NULL DEFAULT '',
	logradouro TEXT NOT NULL DEFAULT '',
	numero TEXT NOT NULL DEFAULT '',
	bairro TEXT NOT NULL DEFAULT '',
	cidade TEXT NOT NULL DEFAULT 'Maricá',
	comprovante_titularidade TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS categorias (
	id BIGSERIAL PRIMARY KEY,
	nome TEXT NOT NULL,
	descricao TEXT NOT NULL DEFAULT '',
	emoji TEXT NOT NULL DEFAULT '',
	tempo_estimado_resolucao INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS relatos (
	id BIGSERIAL PRIMARY KEY,
	cidadao_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	categoria_id BIGINT NOT NULL REFERENCES categorias(id),
	descricao TEXT NOT NULL,
	foto_problema TEXT NOT NULL,
	latitude DOUBLE PRECISION,
	longitude DOUBLE PRECISION,
	endereco_aproximado TEXT NOT NULL DEFAULT '',
	e_propriedade_privada BOOLEAN NOT NULL DEFAULT FALSE,
	comprovante_titularidade TEXT NOT NULL DEFAULT '',
	aceite_termo_ambiental BOOLEAN NOT NULL DEFAULT FALSE,
	status_atual TEXT NOT NULL DEFAULT 'recebido',
	avaliacao INT,
	comentario_cidadao TEXT NOT NULL DEFAULT '',
	criado_em TIMESTAMPTZ NOT NULL DEFAULT now(),
	atualizado_em TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS historico_status (
	id BIGSERIAL PRIMARY KEY,
	relato_id BIGINT NOT NULL REFERENCES relatos(id) ON DELETE CASCADE,
	status TEXT NOT NULL,
	observacao_prefeitura TEXT NOT NULL DEFAULT '',
	foto_resolucao TEXT NOT NULL DEFAULT '',
	atualizado_por UUID REFERENCES users(id) ON DELETE SET NULL,
	data_atualizacao TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_relatos_cidadao ON relatos(cidadao_id, criado_em DESC);
CREATE INDEX IF NOT EXISTS idx_historico_relato ON historico_status(relato_id, data_atualizacao DESC);
`

// seedCategorias inserts the default problem categories on first boot.
// Idempotent: skipped when the table already has rows.
const seedCategorias = `
INSERT INTO categorias (nome, descricao, emoji, tempo_estimado_resolucao)
SELECT v.nome, v.descricao, v.emoji, v.dias
FROM (VALUES
	('Buraco na via', 'Buracos e afundamentos no asfalto', '🕳️', 15),
	('Lâmpada Queimada', 'Iluminação pública apagada ou piscando', '💡', 5),
	('Foco de Dengue', 'Água parada e criadouros do mosquito', '🦟', 3),
	('Lixo Acumulado', 'Descarte irregular de lixo ou entulho', '🗑️', 7),
	('Vazamento de Água', 'Vazamentos na rede de abastecimento', '💧', 10),
	('Calçada Danificada', 'Calçadas quebradas ou obstruídas', '🚶', 20)
) AS v(nome, descricao, emoji, dias)
WHERE NOT EXISTS (SELECT 1 FROM categorias)
`

// Migrate creates the schema and seeds reference data. Safe to run on
// every startup.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return err
	}
	_, err := db.Exec(ctx, seedCategorias)
	return err
}
