package models

import "time"

type Categoria struct {
	ID                     int64  `json:"id"`
	Nome                   string `json:"nome"`
	Descricao              string `json:"descricao,omitempty"`
	Emoji                  string `json:"emoji,omitempty"`
	TempoEstimadoResolucao int    `json:"tempo_estimado_resolucao"` // days
}

// Relato is the ticket a citizen files about an infrastructure problem.
type Relato struct {
	ID                   int64    `json:"id"`
	CidadaoID            string   `json:"-"`
	CategoriaID          int64    `json:"categoria"`
	CategoriaNome        string   `json:"categoria_nome,omitempty"`
	Descricao            string   `json:"descricao"`
	FotoProblema         string   `json:"foto_problema"`
	Latitude             *float64 `json:"latitude,omitempty"`
	Longitude            *float64 `json:"longitude,omitempty"`
	EnderecoAproximado   string   `json:"endereco_aproximado,omitempty"`
	PropriedadePrivada   bool     `json:"e_propriedade_privada"`
	ComprovanteTit       string   `json:"comprovante_titularidade,omitempty"`
	AceiteTermoAmbiental bool     `json:"aceite_termo_ambiental"`

	Status        string `json:"status_atual"`
	StatusDisplay string `json:"status_display"`

	// Feedback, set by the owning citizen after resolution.
	Avaliacao         *int   `json:"avaliacao,omitempty"`
	ComentarioCidadao string `json:"comentario_cidadao,omitempty"`

	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`

	Historico []HistoricoStatus `json:"historico,omitempty"`
}

// HistoricoStatus is one append-only entry in a relato's status timeline.
// Entries are never updated or deleted once written.
type HistoricoStatus struct {
	ID                   int64     `json:"id"`
	RelatoID             int64     `json:"relato_id"`
	Status               string    `json:"status"`
	StatusDisplay        string    `json:"status_display"`
	ObservacaoPrefeitura string    `json:"observacao_prefeitura,omitempty"`
	FotoResolucao        string    `json:"foto_resolucao,omitempty"`
	AtualizadoPor        *string   `json:"-"` // nil = system-generated
	DataAtualizacao      time.Time `json:"data_atualizacao"`
}
