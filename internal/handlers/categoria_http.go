package handlers

import (
	"net/http"

	"github.com/lucianosaints/app-marica-cidadao/internal/models"
	"github.com/lucianosaints/app-marica-cidadao/internal/repository"
	"github.com/lucianosaints/app-marica-cidadao/internal/utils"
)

type CategoriaHTTP struct {
	repo repository.CategoriaRepository
}

func NewCategoriaHTTP(repo repository.CategoriaRepository) *CategoriaHTTP {
	return &CategoriaHTTP{repo: repo}
}

// GET /api/categorias — public, feeds the submission form.
func (h *CategoriaHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := h.repo.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if cats == nil {
			cats = []models.Categoria{}
		}
		utils.JSON(w, http.StatusOK, cats)
	}
}
