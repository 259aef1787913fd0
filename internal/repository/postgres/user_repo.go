package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lucianosaints/app-marica-cidadao/internal/models"
	"github.com/lucianosaints/app-marica-cidadao/internal/repository"
)

type UserRepo struct{ db *pgxpool.Pool }

func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{db: db} }

// RegisterCitizen inserts the user identity and its profile in one
// transaction. A failed profile insert (duplicate cpf, for example) rolls
// the identity back too, so no orphan users remain.
func (r *UserRepo) RegisterCitizen(ctx context.Context, u *models.User, passwordHash string, p *models.PerfilCidadao) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, email, first_name, password_h, is_staff)
		VALUES ($1,$2,$3,$4,FALSE)
		RETURNING id, created_at
	`, u.Username, u.Email, u.FirstName, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return mapDuplicate(err)
	}

	p.UserID = u.ID
	if p.Cidade == "" {
		p.Cidade = "Maricá"
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO perfis_cidadao (user_id, cpf, telefone, data_nascimento, cep, logradouro, numero, bairro, cidade, comprovante_titularidade)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, p.UserID, p.CPF, p.Telefone, p.DataNascimento, p.CEP, p.Logradouro, p.Numero, p.Bairro, p.Cidade, p.ComprovanteTit)
	if err != nil {
		return mapDuplicate(err)
	}
	return tx.Commit(ctx)
}

func (r *UserRepo) CreateStaff(ctx context.Context, username, email, firstName, passwordHash string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, first_name, password_h, is_staff)
		VALUES ($1,$2,$3,$4,TRUE)
		RETURNING id, username, email, first_name, is_staff, created_at
	`, username, email, firstName, passwordHash).
		Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.IsStaff, &u.CreatedAt)
	if err != nil {
		return nil, mapDuplicate(err)
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, string, error) {
	return r.getWithHash(ctx, `WHERE username=$1`, username)
}

// ListByEmail returns every account holding the email, oldest first.
// Emails are not unique (family members sometimes share one), so login has
// to try the password against each candidate. The empty-email guard keeps
// accounts registered without an email from ever matching.
func (r *UserRepo) ListByEmail(ctx context.Context, email string) ([]repository.Credential, error) {
	if email == "" {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, username, email, first_name, is_staff, password_h, created_at
		FROM users WHERE email=$1 AND email <> ''
		ORDER BY created_at
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.Credential
	for rows.Next() {
		var c repository.Credential
		u := &c.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.IsStaff, &c.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *UserRepo) getWithHash(ctx context.Context, where string, arg any) (*models.User, string, error) {
	var u models.User
	var ph string
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, first_name, is_staff, password_h, created_at
		FROM users `+where, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.IsStaff, &ph, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &u, ph, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, first_name, is_staff, created_at
		FROM users WHERE id=$1
	`, id).Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.IsStaff, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetPerfil(ctx context.Context, userID string) (*models.PerfilCidadao, error) {
	var p models.PerfilCidadao
	err := r.db.QueryRow(ctx, `
		SELECT user_id, cpf, telefone, data_nascimento, cep, logradouro, numero, bairro, cidade, comprovante_titularidade
		FROM perfis_cidadao WHERE user_id=$1
	`, userID).Scan(&p.UserID, &p.CPF, &p.Telefone, &p.DataNascimento, &p.CEP, &p.Logradouro, &p.Numero, &p.Bairro, &p.Cidade, &p.ComprovanteTit)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// mapDuplicate converts a Postgres unique-violation into the repository's
// sentinel so the service layer can surface it as a validation failure.
func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrDuplicate
	}
	return err
}
