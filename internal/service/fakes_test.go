package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/lucianosaints/app-marica-cidadao/internal/models"
	"github.com/lucianosaints/app-marica-cidadao/internal/notify"
	"github.com/lucianosaints/app-marica-cidadao/internal/repository"
)

// fakeStore is an in-memory stand-in for the postgres repositories. A
// single instance backs all four repository interfaces so tests share one
// consistent world.
type fakeStore struct {
	users      map[string]*models.User
	hashes     map[string]string
	perfis     map[string]*models.PerfilCidadao
	categorias map[int64]*models.Categoria
	relatos    map[int64]*models.Relato
	historico  []models.HistoricoStatus

	nextRelatoID int64
	nextHistID   int64
	clock        time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      map[string]*models.User{},
		hashes:     map[string]string{},
		perfis:     map[string]*models.PerfilCidadao{},
		categorias: map[int64]*models.Categoria{},
		relatos:    map[int64]*models.Relato{},
		clock:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeStore) addUser(id, username, firstName string, staff bool) *models.User {
	u := &models.User{ID: id, Username: username, FirstName: firstName, IsStaff: staff, CreatedAt: f.tick()}
	f.users[id] = u
	return u
}

func (f *fakeStore) addCategoria(id int64, nome string) *models.Categoria {
	c := &models.Categoria{ID: id, Nome: nome, TempoEstimadoResolucao: 15}
	f.categorias[id] = c
	return c
}

// --- repository.RelatoRepository ---

func (f *fakeStore) Create(ctx context.Context, t *models.Relato, initial *models.HistoricoStatus) error {
	f.nextRelatoID++
	t.ID = f.nextRelatoID
	t.CriadoEm = f.tick()
	t.AtualizadoEm = t.CriadoEm
	cp := *t
	f.relatos[t.ID] = &cp

	initial.RelatoID = t.ID
	f.appendHist(initial)
	return nil
}

func (f *fakeStore) appendHist(e *models.HistoricoStatus) {
	f.nextHistID++
	e.ID = f.nextHistID
	e.DataAtualizacao = f.tick()
	e.StatusDisplay = models.StatusLabel(e.Status)
	f.historico = append(f.historico, *e)
}

func (f *fakeStore) Get(ctx context.Context, id int64) (*models.Relato, error) {
	t, ok := f.relatos[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	hist, _ := f.ListByRelato(ctx, id)
	cp.Historico = hist
	return &cp, nil
}

func (f *fakeStore) ListAll(ctx context.Context) ([]models.Relato, error) {
	var out []models.Relato
	for _, t := range f.relatos {
		out = append(out, *t)
	}
	sortNewestFirst(out)
	return out, nil
}

func (f *fakeStore) ListByCidadao(ctx context.Context, cidadaoID string) ([]models.Relato, error) {
	var out []models.Relato
	for _, t := range f.relatos {
		if t.CidadaoID == cidadaoID {
			out = append(out, *t)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(ts []models.Relato) {
	sort.Slice(ts, func(i, j int) bool {
		if !ts[i].CriadoEm.Equal(ts[j].CriadoEm) {
			return ts[i].CriadoEm.After(ts[j].CriadoEm)
		}
		return ts[i].ID > ts[j].ID
	})
}

func (f *fakeStore) SetStatus(ctx context.Context, relatoID int64, status string, entry *models.HistoricoStatus) error {
	t, ok := f.relatos[relatoID]
	if !ok {
		return errors.New("relato not found")
	}
	t.Status = status
	t.StatusDisplay = models.StatusLabel(status)
	t.AtualizadoEm = f.tick()

	entry.RelatoID = relatoID
	entry.Status = status
	f.appendHist(entry)
	return nil
}

func (f *fakeStore) SetAvaliacao(ctx context.Context, relatoID int64, avaliacao int, comentario string) error {
	t, ok := f.relatos[relatoID]
	if !ok {
		return errors.New("relato not found")
	}
	t.Avaliacao = &avaliacao
	t.ComentarioCidadao = comentario
	return nil
}

// --- repository.HistoricoRepository ---

func (f *fakeStore) ListByRelato(ctx context.Context, relatoID int64) ([]models.HistoricoStatus, error) {
	var out []models.HistoricoStatus
	for _, e := range f.historico {
		if e.RelatoID == relatoID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DataAtualizacao.Equal(out[j].DataAtualizacao) {
			return out[i].DataAtualizacao.After(out[j].DataAtualizacao)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// --- repository.CategoriaRepository ---

func (f *fakeStore) List(ctx context.Context) ([]models.Categoria, error) {
	var out []models.Categoria
	for _, c := range f.categorias {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetCategoria(ctx context.Context, id int64) (*models.Categoria, error) {
	c, ok := f.categorias[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// categoriaRepo adapts fakeStore to CategoriaRepository without colliding
// with RelatoRepository's Get.
type categoriaRepo struct{ *fakeStore }

func (r categoriaRepo) Get(ctx context.Context, id int64) (*models.Categoria, error) {
	return r.GetCategoria(ctx, id)
}

// --- repository.UserRepository ---

func (f *fakeStore) RegisterCitizen(ctx context.Context, u *models.User, passwordHash string, p *models.PerfilCidadao) error {
	for _, existing := range f.perfis {
		if existing.CPF == p.CPF {
			return repository.ErrDuplicate
		}
	}
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	u.ID = "user-" + u.Username
	u.CreatedAt = f.tick()
	f.users[u.ID] = u
	f.hashes[u.ID] = passwordHash
	p.UserID = u.ID
	f.perfis[u.ID] = p
	return nil
}

func (f *fakeStore) CreateStaff(ctx context.Context, username, email, firstName, passwordHash string) (*models.User, error) {
	u := f.addUser("staff-"+username, username, firstName, true)
	f.hashes[u.ID] = passwordHash
	return u, nil
}

func (f *fakeStore) GetByUsername(ctx context.Context, username string) (*models.User, string, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, f.hashes[u.ID], nil
		}
	}
	return nil, "", nil
}

func (f *fakeStore) ListByEmail(ctx context.Context, email string) ([]repository.Credential, error) {
	if email == "" {
		return nil, nil
	}
	var out []repository.Credential
	for _, u := range f.users {
		if u.Email == email {
			out = append(out, repository.Credential{User: *u, PasswordHash: f.hashes[u.ID]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].User.CreatedAt.Before(out[j].User.CreatedAt) })
	return out, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeStore) GetPerfil(ctx context.Context, userID string) (*models.PerfilCidadao, error) {
	p, ok := f.perfis[userID]
	if !ok {
		return nil, nil
	}
	return p, nil
}

// --- notify.Notifier fakes ---

type recordingNotifier struct {
	sent []notify.Notification
}

func (n *recordingNotifier) Notify(ctx context.Context, msg notify.Notification) error {
	n.sent = append(n.sent, msg)
	return nil
}

type failingNotifier struct{ calls int }

func (n *failingNotifier) Notify(ctx context.Context, msg notify.Notification) error {
	n.calls++
	return errors.New("gateway unreachable")
}
