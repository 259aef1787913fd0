package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lucianosaints/app-marica-cidadao/internal/models"
	"github.com/lucianosaints/app-marica-cidadao/internal/repository"
	"github.com/lucianosaints/app-marica-cidadao/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users         repository.UserRepository
	sessionSecret string
	tokenTTL      time.Duration
}

func NewAuthService(users repository.UserRepository, sessionSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, sessionSecret: sessionSecret, tokenTTL: tokenTTL}
}

type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	FirstName      string
	CPF            string
	Telefone       string
	DataNascimento *time.Time
	CEP            string
	Logradouro     string
	Numero         string
	Bairro         string
	Cidade         string
	ComprovanteTit string // stored path, optional
}

// Register creates the user identity and its citizen profile atomically.
// Self-registration always produces a non-staff user.
func (a *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.CPF = strings.TrimSpace(in.CPF)
	if in.Username == "" {
		return nil, validationf("username é obrigatório")
	}
	if in.CPF == "" {
		return nil, validationf("cpf é obrigatório")
	}
	if len(in.Password) < 6 {
		return nil, validationf("senha deve ter pelo menos 6 caracteres")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:  in.Username,
		Email:     strings.TrimSpace(in.Email),
		FirstName: strings.TrimSpace(in.FirstName),
	}
	p := &models.PerfilCidadao{
		CPF:            in.CPF,
		Telefone:       strings.TrimSpace(in.Telefone),
		DataNascimento: in.DataNascimento,
		CEP:            in.CEP,
		Logradouro:     in.Logradouro,
		Numero:         in.Numero,
		Bairro:         in.Bairro,
		Cidade:         in.Cidade,
		ComprovanteTit: in.ComprovanteTit,
	}
	if err := a.users.RegisterCitizen(ctx, u, hash, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validationf("cpf ou username já cadastrado")
		}
		return nil, err
	}
	return u, nil
}

// Login authenticates by username and, failing that, by email — citizens
// often type whichever they remember. Emails are not unique, so the email
// path checks the password against every account holding it.
func (a *AuthService) Login(ctx context.Context, username, password string) (token string, user *models.User, err error) {
	u, hash, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if u != nil {
		if !utils.CheckPassword(hash, password) {
			return "", nil, ErrInvalidCredentials
		}
		return a.issue(u)
	}

	creds, err := a.users.ListByEmail(ctx, username)
	if err != nil {
		return "", nil, err
	}
	for i := range creds {
		if utils.CheckPassword(creds[i].PasswordHash, password) {
			return a.issue(&creds[i].User)
		}
	}
	return "", nil, ErrInvalidCredentials
}

func (a *AuthService) issue(u *models.User) (string, *models.User, error) {
	tok, err := utils.SignJWT(a.sessionSecret, u.ID, u.IsStaff, a.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}
