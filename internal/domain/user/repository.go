package user

import (
	"context"
)

// Filter restringe a listagem de usuários
type Filter struct {
	AssociationID string
	BlockID       string
	Search        string
	Limit         int
	Offset        int
}

// Repository define a interface para operações de repositório de usuários
type Repository interface {
	// Create cria um novo usuário
	Create(ctx context.Context, u *User) error

	// FindByID busca um usuário pelo ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail busca um usuário pelo email normalizado
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List lista os usuários com paginação e retorna o total sem paginação
	List(ctx context.Context, filter Filter) ([]*User, int, error)

	// Update atualiza os dados de um usuário existente
	Update(ctx context.Context, u *User) error
}
