package domain

import "time"

// Empresa is a client company that owns contacts, tickets and invoices.
type Empresa struct {
	ID                 string
	Nome               string
	CNPJ               *string
	Telefone           *string
	Email              *string
	Endereco           *string
	ContatoPrincipalID *string
	Ativo              bool
	DataCriacao        time.Time
	DataAtualizacao    time.Time
}

// Contato is a person at a company who raises tickets.
type Contato struct {
	ID              string
	EmpresaID       string
	Nome            string
	Email           *string
	Telefone        *string
	Cargo           *string
	Departamento    *string
	Principal       bool
	Ativo           bool
	DataCriacao     time.Time
	DataAtualizacao time.Time
}
