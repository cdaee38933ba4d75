package domain

import "time"

// CategoriaServico classifies the kind of service performed on a ticket.
type CategoriaServico struct {
	ID              string
	Nome            string
	Descricao       *string
	CorTag          string
	Icone           *string
	Ordem           int
	Ativo           bool
	DataCriacao     time.Time
	DataAtualizacao time.Time
}
