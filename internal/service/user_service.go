package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/association"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/hugohenrick/erp-condominio/internal/policy"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
)

var (
	ErrBlockRequired     = domain.Wrap(domain.ErrValidation, "administrador de bloco exige um bloco")
	ErrBlockOutOfScope   = domain.Wrap(domain.ErrValidation, "bloco não pertence à associação")
	ErrUserInAssociation = domain.Wrap(domain.ErrConflict, "usuário já pertence a outra associação")
	ErrInviteRequired    = domain.Wrap(domain.ErrForbidden, "email convidado: o cadastro exige um token de convite válido")
)

// inviteTTL é a validade do token de aceite de um convite
const inviteTTL = 7 * 24 * time.Hour

// RegisterInput reúne os dados de cadastro
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      string

	// InviteToken é obrigatório quando o email pertence a um convite pendente
	InviteToken string
}

// InviteInput reúne os dados de um convite para a associação
type InviteInput struct {
	Email     string
	FirstName string
	LastName  string
	Role      string
	BlockID   string
}

// UserQuery restringe e pagina a listagem de usuários
type UserQuery struct {
	Search string
	Limit  int
	Offset int
}

// Invitation é o resultado de um convite. Token só é emitido enquanto o
// usuário ainda não concluiu o cadastro.
type Invitation struct {
	User  *user.User
	Token string
}

// Session é o resultado de um login ou cadastro
type Session struct {
	User  *user.User
	Token string
}

// UserService cuida de cadastro, login, convites e listagem de usuários
type UserService struct {
	base
	users        user.Repository
	associations association.Repository
	blocks       block.Repository
	tokens       *auth.JWTService
}

// NewUserService cria uma nova instância de UserService
func NewUserService(users user.Repository, associations association.Repository, blocks block.Repository, tokens *auth.JWTService, opts ...Option) *UserService {
	return &UserService{
		base:         newBase(opts),
		users:        users,
		associations: associations,
		blocks:       blocks,
		tokens:       tokens,
	}
}

// Register cria uma conta. Um usuário convidado completa o cadastro com o
// token recebido no convite e mantém o papel e o escopo do convite.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email, err := user.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.IsInvited():
		if err := s.checkInvite(existing, in.InviteToken); err != nil {
			return nil, err
		}
		if err := existing.Activate(in.FirstName, in.LastName, in.Password); err != nil {
			return nil, err
		}
		if err := s.users.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.log.Info("convite aceito", "user_id", existing.ID)
		return s.session(existing)
	case err == nil:
		return nil, user.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	role := user.RoleTenant
	if in.Role != "" {
		if role, err = user.ParseRole(in.Role); err != nil {
			return nil, err
		}
	}
	u, err := user.NewUser(email, in.FirstName, in.LastName, in.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("usuário cadastrado", "user_id", u.ID, "role", u.Role)
	return s.session(u)
}

func (s *UserService) checkInvite(u *user.User, token string) error {
	if token == "" || s.tokens == nil {
		return ErrInviteRequired
	}
	claims, err := s.tokens.ValidateInviteToken(token)
	if err != nil || claims.UserID != u.ID || claims.Email != u.Email {
		return ErrInviteRequired
	}
	return nil
}

// Login autentica um usuário ativo
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}
	u, err := s.users.FindByEmail(ctx, normalized)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !u.CheckPassword(password) {
		return nil, user.ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, user.ErrInactive
	}
	return s.session(u)
}

// Refresh emite um novo token a partir de um token ainda válido
func (s *UserService) Refresh(token string) (string, error) {
	return s.tokens.RefreshToken(token)
}

// Me retorna o usuário autenticado
func (s *UserService) Me(ctx context.Context, p auth.Principal) (*user.User, error) {
	return s.users.FindByID(ctx, p.UserID)
}

func (s *UserService) session(u *user.User) (*Session, error) {
	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, fmt.Errorf("falha ao gerar token: %w", err)
	}
	return &Session{User: u, Token: token}, nil
}

// Invite convida (ou revincula) um usuário para a associação
func (s *UserService) Invite(ctx context.Context, p auth.Principal, associationID string, in InviteInput) (*Invitation, error) {
	if _, err := s.associations.FindByID(ctx, associationID); err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanManage(p, policy.Resource{AssociationID: associationID})); err != nil {
		return nil, err
	}

	role, err := user.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if role == user.RoleBlockAdmin && in.BlockID == "" {
		return nil, ErrBlockRequired
	}
	if in.BlockID != "" {
		b, err := s.blocks.FindByID(ctx, in.BlockID)
		if err != nil {
			return nil, err
		}
		if b.AssociationID != associationID {
			return nil, ErrBlockOutOfScope
		}
	}

	email, err := user.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if u.AssociationID != "" && u.AssociationID != associationID {
			return nil, ErrUserInAssociation
		}
		u.Scope(role, associationID, in.BlockID)
		if err := s.users.Update(ctx, u); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrNotFound):
		u, err = user.NewInvitedUser(email, in.FirstName, in.LastName, role)
		if err != nil {
			return nil, err
		}
		u.Scope(role, associationID, in.BlockID)
		if err := s.users.Create(ctx, u); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	invitation := &Invitation{User: u}
	if u.IsInvited() {
		if s.tokens == nil {
			return nil, fmt.Errorf("falha ao emitir convite: serviço de tokens não configurado")
		}
		if invitation.Token, err = s.tokens.GenerateInviteToken(u, inviteTTL); err != nil {
			return nil, fmt.Errorf("falha ao emitir convite: %w", err)
		}
	}

	s.log.Info("usuário convidado", "user_id", u.ID, "association_id", associationID, "role", role)
	return invitation, nil
}

// ListByAssociation lista os usuários de uma associação com paginação
func (s *UserService) ListByAssociation(ctx context.Context, p auth.Principal, associationID string, q UserQuery) ([]*user.User, int, error) {
	if _, err := s.associations.FindByID(ctx, associationID); err != nil {
		return nil, 0, err
	}
	f := user.Filter{AssociationID: associationID, Search: q.Search, Limit: q.Limit, Offset: q.Offset}
	switch {
	case policy.CanManage(p, policy.Resource{AssociationID: associationID}):
	case p.Role == user.RoleBlockAdmin && p.BlockID != "" && p.AssociationID == associationID:
		f.BlockID = p.BlockID
	default:
		return nil, 0, domain.ErrForbidden
	}
	return s.users.List(ctx, f)
}

// List lista os usuários do escopo administrado pelo Principal
func (s *UserService) List(ctx context.Context, p auth.Principal, q UserQuery) ([]*user.User, int, error) {
	if p.Role == user.RoleTenant {
		return nil, 0, domain.ErrForbidden
	}
	scope, ok := policy.ListScope(p, false)
	if !ok {
		return []*user.User{}, 0, nil
	}
	return s.users.List(ctx, user.Filter{
		AssociationID: scope.AssociationID,
		BlockID:       scope.BlockID,
		Search:        q.Search,
		Limit:         q.Limit,
		Offset:        q.Offset,
	})
}
