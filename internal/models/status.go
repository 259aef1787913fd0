package models

// Status values a relato can hold. The transition graph is deliberately
// unrestricted: staff may move a relato between any two statuses.
const (
	StatusRecebido         = "recebido"
	StatusEmAnalise        = "em_analise"
	StatusEquipeDespachada = "equipe_despachada"
	StatusResolvido        = "resolvido"
	StatusRejeitado        = "rejeitado"
)

var statusLabels = map[string]string{
	StatusRecebido:         "Recebido",
	StatusEmAnalise:        "Em Análise",
	StatusEquipeDespachada: "Equipe no Local",
	StatusResolvido:        "Resolvido",
	StatusRejeitado:        "Rejeitado / Improcedente",
}

// ValidStatus reports whether s is one of the five known status values.
func ValidStatus(s string) bool {
	_, ok := statusLabels[s]
	return ok
}

// StatusLabel returns the citizen-facing display label for a status value.
// Unknown values are returned as-is.
func StatusLabel(s string) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return s
}
