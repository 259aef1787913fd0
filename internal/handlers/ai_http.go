package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/lucianosaints/app-marica-cidadao/internal/ai"
	"github.com/lucianosaints/app-marica-cidadao/internal/utils"
)

// Larger than the storage cap: classification is a quick preview, but the
// photo is never persisted here so a looser limit is fine.
const maxAIImageSize = 10 << 20

type AIHTTP struct {
	classifier *ai.Classifier
	log        zerolog.Logger
}

func NewAIHTTP(classifier *ai.Classifier, log zerolog.Logger) *AIHTTP {
	return &AIHTTP{classifier: classifier, log: log}
}

// POST /api/analisar-foto — suggests a category for the uploaded photo.
// Classification is advisory: service failures come back as an error
// payload, never block the citizen from submitting the relato manually.
func (h *AIHTTP) AnalisarFoto() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, fh, err := r.FormFile("foto")
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "foto é obrigatória")
			return
		}
		defer f.Close()

		img, err := io.ReadAll(io.LimitReader(f, maxAIImageSize+1))
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "não foi possível ler a foto")
			return
		}
		if len(img) > maxAIImageSize {
			utils.Error(w, http.StatusBadRequest, "foto excede o tamanho máximo de 10MB")
			return
		}

		mimeType := fh.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = http.DetectContentType(img)
		}

		result, err := h.classifier.ClassifyImage(r.Context(), img, mimeType)
		if err != nil {
			h.log.Error().Err(err).Msg("análise de imagem falhou")
			var ee *ai.ExternalError
			if errors.As(err, &ee) {
				utils.Error(w, http.StatusBadGateway, ee.Reason)
				return
			}
			utils.Error(w, http.StatusBadGateway, "análise de imagem indisponível")
			return
		}
		utils.JSON(w, http.StatusOK, result)
	}
}
