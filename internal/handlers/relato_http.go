package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lucianosaints/app-marica-cidadao/internal/middleware"
	"github.com/lucianosaints/app-marica-cidadao/internal/models"
	"github.com/lucianosaints/app-marica-cidadao/internal/service"
	"github.com/lucianosaints/app-marica-cidadao/internal/storage"
	"github.com/lucianosaints/app-marica-cidadao/internal/utils"
)

// RelatoHTTP wires the relato endpoints to the lifecycle service.
type RelatoHTTP struct {
	svc   *service.TicketService
	files *storage.Store
}

func NewRelatoHTTP(svc *service.TicketService, files *storage.Store) *RelatoHTTP {
	return &RelatoHTTP{svc: svc, files: files}
}

// GET /api/relatos — staff see everything, citizens only their own.
func (h *RelatoHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		items, err := h.svc.ListVisible(r.Context(), uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if items == nil {
			items = []models.Relato{}
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// POST /api/relatos — multipart form with the problem photo.
func (h *RelatoHTTP) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)

		categoriaID, err := strconv.ParseInt(r.FormValue("categoria"), 10, 64)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "categoria inválida")
			return
		}

		in := service.SubmitInput{
			CategoriaID:          categoriaID,
			Descricao:            r.FormValue("descricao"),
			EnderecoAproximado:   r.FormValue("endereco_aproximado"),
			PropriedadePrivada:   parseBool(r.FormValue("e_propriedade_privada")),
			AceiteTermoAmbiental: parseBool(r.FormValue("aceite_termo_ambiental")),
		}
		if v := r.FormValue("latitude"); v != "" {
			lat, err := strconv.ParseFloat(v, 64)
			if err != nil {
				utils.Error(w, http.StatusBadRequest, "latitude inválida")
				return
			}
			in.Latitude = &lat
		}
		if v := r.FormValue("longitude"); v != "" {
			lng, err := strconv.ParseFloat(v, 64)
			if err != nil {
				utils.Error(w, http.StatusBadRequest, "longitude inválida")
				return
			}
			in.Longitude = &lng
		}

		_, fotoFH, err := r.FormFile("foto_problema")
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "foto do problema é obrigatória")
			return
		}
		fotoPath, err := h.files.SaveUpload(fotoFH, storage.DirRelatos)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		in.FotoProblema = fotoPath

		if fh := optionalFile(r, "comprovante_titularidade"); fh != nil {
			path, err := h.files.SaveUpload(fh, storage.DirComprovantes)
			if err != nil {
				utils.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			in.ComprovanteTit = path
		}

		t, err := h.svc.Submit(r.Context(), uid, in)
		if err != nil {
			// A rejected relato must not leave its uploads behind.
			h.discard(in.FotoProblema, in.ComprovanteTit)
			writeServiceError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, t)
	}
}

// GET /api/relatos/{id} — relato with its timeline, newest entry first.
func (h *RelatoHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := relatoID(w, r)
		if !ok {
			return
		}
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		t, err := h.svc.Get(r.Context(), uid, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// PATCH /api/relatos/{id} — owning citizen rates a resolved relato.
func (h *RelatoHTTP) Rate() http.HandlerFunc {
	type inDTO struct {
		Avaliacao         int    `json:"avaliacao"`
		ComentarioCidadao string `json:"comentario_cidadao"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := relatoID(w, r)
		if !ok {
			return
		}
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "json inválido")
			return
		}
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		t, err := h.svc.Rate(r.Context(), uid, id, in.Avaliacao, in.ComentarioCidadao)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// POST /api/relatos/{id}/status — staff transition with optional resolution
// photo. Accepts multipart (photo attached) or plain JSON.
func (h *RelatoHTTP) Transition() http.HandlerFunc {
	type inDTO struct {
		Status               string `json:"status"`
		ObservacaoPrefeitura string `json:"observacao_prefeitura"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := relatoID(w, r)
		if !ok {
			return
		}

		var in inDTO
		var fotoPath string
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				utils.Error(w, http.StatusBadRequest, "json inválido")
				return
			}
		} else {
			in.Status = r.FormValue("status")
			in.ObservacaoPrefeitura = r.FormValue("observacao_prefeitura")
			if fh := optionalFile(r, "foto_resolucao"); fh != nil {
				path, err := h.files.SaveUpload(fh, storage.DirResolucoes)
				if err != nil {
					utils.Error(w, http.StatusBadRequest, err.Error())
					return
				}
				fotoPath = path
			}
		}

		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		entry, err := h.svc.Transition(r.Context(), uid, id, in.Status, in.ObservacaoPrefeitura, fotoPath)
		if err != nil {
			h.discard(fotoPath)
			writeServiceError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, entry)
	}
}

// GET /api/relatos/{id}/historico
func (h *RelatoHTTP) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := relatoID(w, r)
		if !ok {
			return
		}
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		hist, err := h.svc.History(r.Context(), uid, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if hist == nil {
			hist = []models.HistoricoStatus{}
		}
		utils.JSON(w, http.StatusOK, hist)
	}
}

// discard removes uploads that were stored before the service rejected the
// request, so validation failures do not accumulate orphaned files.
func (h *RelatoHTTP) discard(paths ...string) {
	for _, p := range paths {
		_ = h.files.Remove(p)
	}
}

func relatoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id inválido")
		return 0, false
	}
	return id, true
}

func optionalFile(r *http.Request, field string) *multipart.FileHeader {
	_, fh, err := r.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}
