// Package ai suggests a problem category for a submitted photo using the
// Gemini API. Classification is advisory: every failure comes back as an
// error the caller can surface, never a panic or a blocked submission.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const prompt = `Você é um especialista em zeladoria urbana da Prefeitura de Maricá.
Analise a imagem e identifique qual categoria de problema de infraestrutura ela representa.
As categorias possíveis são:
1: Buraco na via
2: Lâmpada Queimada
3: Foco de Dengue
4: Lixo Acumulado
5: Vazamento de Água
6: Calçada Danificada

Responda APENAS em formato JSON com os seguintes campos:
- "categoria_id": (ID numérico da categoria encontrada, ou null se não identificar)
- "confianca": (0 a 100)
- "justificativa": (Breve explicação técnica do que viu na foto)`

// Result is the classification contract exposed to the frontend.
type Result struct {
	CategoriaID   *int64 `json:"categoria_id"`
	Confianca     int    `json:"confianca"`
	Justificativa string `json:"justificativa"`
}

// ExternalError marks a failure of the classification service itself
// (unreachable, misconfigured, or malformed reply).
type ExternalError struct {
	Reason string
	Err    error
}

func (e *ExternalError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *ExternalError) Unwrap() error { return e.Err }

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type Classifier struct {
	apiKey string
	url    string
	client *http.Client
}

func NewClassifier(apiKey, url string) *Classifier {
	return &Classifier{
		apiKey: apiKey,
		url:    url,
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

// ClassifyImage sends the photo to Gemini and parses the suggested
// category.
func (c *Classifier) ClassifyImage(ctx context.Context, image []byte, mimeType string) (*Result, error) {
	if c.apiKey == "" {
		return nil, &ExternalError{Reason: "GEMINI_API_KEY não configurada"}
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ExternalError{Reason: "erro ao montar requisição", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"?key="+c.apiKey, bytes.NewReader(payload))
	if err != nil {
		return nil, &ExternalError{Reason: "erro ao montar requisição", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ExternalError{Reason: "erro de comunicação com o serviço de análise", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExternalError{Reason: "erro ao ler resposta do serviço", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ExternalError{Reason: fmt.Sprintf("serviço de análise retornou status %d", resp.StatusCode)}
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, &ExternalError{Reason: "resposta do serviço em formato inesperado", Err: err}
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, &ExternalError{Reason: "serviço de análise não retornou resultado"}
	}

	var result Result
	if err := json.Unmarshal([]byte(stripFences(gr.Candidates[0].Content.Parts[0].Text)), &result); err != nil {
		return nil, &ExternalError{Reason: "não foi possível interpretar a análise da imagem", Err: err}
	}
	return &result, nil
}

// stripFences removes the markdown code fence Gemini often wraps JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	s = strings.Trim(s, "`")
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSpace(s)
}
