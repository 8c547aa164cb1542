package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-condominio/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = domain.Wrap(domain.ErrNotFound, "usuário não encontrado")
	ErrInvalidEmail       = domain.Wrap(domain.ErrValidation, "email inválido")
	ErrEmptyName          = domain.Wrap(domain.ErrValidation, "nome e sobrenome não podem ser vazios")
	ErrInvalidRole        = domain.Wrap(domain.ErrValidation, "papel de usuário inválido")
	ErrWeakPassword       = domain.Wrap(domain.ErrValidation, "senha deve ter pelo menos 6 caracteres")
	ErrDuplicateEmail     = domain.Wrap(domain.ErrConflict, "email já cadastrado")
	ErrInvalidCredentials = domain.Wrap(domain.ErrForbidden, "credenciais inválidas")
	ErrInactive           = domain.Wrap(domain.ErrForbidden, "usuário inativo")
)

// MinPasswordLength é o tamanho mínimo de senha aceito
const MinPasswordLength = 6

// Role representa o papel/função do usuário
type Role string

// Status representa o status do usuário
type Status string

const (
	RoleAdminAssociation Role = "ADMIN_ASSOCIATION" // Administrador da associação
	RoleBlockAdmin       Role = "BLOCK_ADMIN"       // Administrador de bloco
	RoleTenant           Role = "LOCATAR"           // Morador
)

const (
	StatusActive   Status = "ACTIVE"   // Usuário ativo
	StatusInvited  Status = "INVITED"  // Convidado, ainda sem senha
	StatusInactive Status = "INACTIVE" // Usuário inativo
)

// ParseRole valida um papel
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdminAssociation:
		return RoleAdminAssociation, nil
	case RoleBlockAdmin:
		return RoleBlockAdmin, nil
	case RoleTenant:
		return RoleTenant, nil
	}
	return "", ErrInvalidRole
}

// User representa um usuário do sistema
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Password      string    `json:"-"` // O campo senha não é retornado nas respostas JSON
	Role          Role      `json:"role"`
	Status        Status    `json:"status"`
	AssociationID string    `json:"associationId,omitempty"`
	BlockID       string    `json:"blockId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewUser cria um usuário ativo com a senha informada
func NewUser(email, firstName, lastName, password string, role Role) (*User, error) {
	u, err := newUser(email, firstName, lastName, role, StatusActive)
	if err != nil {
		return nil, err
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// NewInvitedUser cria um usuário convidado, que completa o cadastro depois
func NewInvitedUser(email, firstName, lastName string, role Role) (*User, error) {
	return newUser(email, firstName, lastName, role, StatusInvited)
}

func newUser(email, firstName, lastName string, role Role, status Status) (*User, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		ID:        uuid.New().String(),
		Email:     email,
		Role:      role,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.SetName(firstName, lastName); err != nil {
		return nil, err
	}
	return u, nil
}

// NormalizeEmail valida e normaliza um email para comparação
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// SetName atualiza nome e sobrenome
func (u *User) SetName(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return ErrEmptyName
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.UpdatedAt = time.Now()
	return nil
}

// FullName retorna nome e sobrenome
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	if u.Password == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Activate completa o cadastro de um usuário convidado
func (u *User) Activate(firstName, lastName, password string) error {
	if err := u.SetName(firstName, lastName); err != nil {
		return err
	}
	if err := u.SetPassword(password); err != nil {
		return err
	}
	u.Status = StatusActive
	return nil
}

// Scope vincula o usuário a uma associação e, opcionalmente, a um bloco
func (u *User) Scope(role Role, associationID, blockID string) {
	u.Role = role
	u.AssociationID = associationID
	u.BlockID = blockID
	u.UpdatedAt = time.Now()
}

// IsActive verifica se o usuário está ativo
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsInvited verifica se o usuário ainda não completou o cadastro
func (u *User) IsInvited() bool {
	return u.Status == StatusInvited
}
