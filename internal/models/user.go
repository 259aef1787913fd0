package models

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

// PerfilCidadao extends a User with the registration data the city hall
// collects. It lives and dies with its user row.
type PerfilCidadao struct {
	UserID         string     `json:"-"`
	CPF            string     `json:"cpf"`
	Telefone       string     `json:"telefone,omitempty"`
	DataNascimento *time.Time `json:"data_nascimento,omitempty"`
	CEP            string     `json:"cep,omitempty"`
	Logradouro     string     `json:"logradouro,omitempty"`
	Numero         string     `json:"numero,omitempty"`
	Bairro         string     `json:"bairro,omitempty"`
	Cidade         string     `json:"cidade,omitempty"`
	ComprovanteTit string     `json:"comprovante_titularidade,omitempty"`
}
