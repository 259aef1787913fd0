package repository

import (
	"context"
	"errors"

	"github.com/lucianosaints/app-marica-cidadao/internal/models"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint
// (cpf or username already registered).
var ErrDuplicate = errors.New("duplicate record")

// Credential pairs a user with its stored password hash for login checks.
type Credential struct {
	User         models.User
	PasswordHash string
}

type CategoriaRepository interface {
	List(ctx context.Context) ([]models.Categoria, error)
	Get(ctx context.Context, id int64) (*models.Categoria, error)
}

type RelatoRepository interface {
	// Create persists the relato together with its initial history entry in
	// a single transaction.
	Create(ctx context.Context, r *models.Relato, initial *models.HistoricoStatus) error
	Get(ctx context.Context, id int64) (*models.Relato, error)
	ListAll(ctx context.Context) ([]models.Relato, error)
	ListByCidadao(ctx context.Context, cidadaoID string) ([]models.Relato, error)
	// SetStatus updates the relato's current status and appends the history
	// entry in a single transaction.
	SetStatus(ctx context.Context, relatoID int64, status string, entry *models.HistoricoStatus) error
	SetAvaliacao(ctx context.Context, relatoID int64, avaliacao int, comentario string) error
}

type HistoricoRepository interface {
	// ListByRelato returns the relato's timeline, newest first.
	ListByRelato(ctx context.Context, relatoID int64) ([]models.HistoricoStatus, error)
}

type UserRepository interface {
	// RegisterCitizen creates the user identity and its citizen profile as
	// one atomic unit: if either insert fails, neither row remains.
	RegisterCitizen(ctx context.Context, u *models.User, passwordHash string, p *models.PerfilCidadao) error
	CreateStaff(ctx context.Context, username, email, firstName, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, string /*passwordHash*/, error)
	// ListByEmail returns every account registered under the email, oldest
	// first. Emails are not unique across users; accounts registered without
	// an email never match.
	ListByEmail(ctx context.Context, email string) ([]Credential, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetPerfil(ctx context.Context, userID string) (*models.PerfilCidadao, error)
}
