package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/lucianosaints/app-marica-cidadao/internal/service"
	"github.com/lucianosaints/app-marica-cidadao/internal/storage"
	"github.com/lucianosaints/app-marica-cidadao/internal/utils"
)

type AuthHTTP struct {
	svc   *service.AuthService
	files *storage.Store
}

func NewAuthHTTP(svc *service.AuthService, files *storage.Store) *AuthHTTP {
	return &AuthHTTP{svc: svc, files: files}
}

// POST /api/cadastro — multipart form; creates the user identity and the
// citizen profile as one atomic unit.
func (h *AuthHTTP) Cadastro() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := service.RegisterInput{
			Username:   r.FormValue("username"),
			Email:      r.FormValue("email"),
			Password:   r.FormValue("password"),
			FirstName:  r.FormValue("first_name"),
			CPF:        r.FormValue("cpf"),
			Telefone:   r.FormValue("telefone"),
			CEP:        r.FormValue("cep"),
			Logradouro: r.FormValue("logradouro"),
			Numero:     r.FormValue("numero"),
			Bairro:     r.FormValue("bairro"),
			Cidade:     r.FormValue("cidade"),
		}
		if s := r.FormValue("data_nascimento"); s != "" {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				utils.Error(w, http.StatusBadRequest, "data_nascimento inválida (use AAAA-MM-DD)")
				return
			}
			in.DataNascimento = &d
		}

		if path, ok, err := h.saveOptional(r, "comprovante_titularidade", storage.DirTitularidade); err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		} else if ok {
			in.ComprovanteTit = path
		}

		u, err := h.svc.Register(r.Context(), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, u)
	}
}

// POST /api/token — accepts username or email plus password.
func (h *AuthHTTP) Token() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "json inválido")
			return
		}

		token, u, err := h.svc.Login(r.Context(), in.Username, in.Password)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Cidadão não encontrado ou senha incorreta.")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{
			"token":    token,
			"username": u.Username,
		})
	}
}

// saveOptional stores a form file when it was sent; ok reports presence.
func (h *AuthHTTP) saveOptional(r *http.Request, field, subdir string) (path string, ok bool, err error) {
	var fh *multipart.FileHeader
	_, fh, err = r.FormFile(field)
	if err == http.ErrMissingFile || err == http.ErrNotMultipart {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	path, err = h.files.SaveUpload(fh, subdir)
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}
