package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 6

// BcryptCost costo de hash de contraseñas.
const BcryptCost = 10

// UserUseCase aplica reglas de negocio para usuarios: administración (solo ADMIN) y perfil propio.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List devuelve todos los usuarios. Solo ADMIN.
func (uc *UserUseCase) List(ctx context.Context, actor entity.Actor) ([]dto.UserResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.NewPersistenceError("listar usuarios", err)
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *dto.NewUserResponse(u))
	}
	return out, nil
}

// Create crea un usuario. Solo ADMIN. Rol distinto de ADMIN se guarda como USER.
func (uc *UserUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return nil, domain.NewValidationError("", "nombre y email son requeridos")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.NewValidationError("password", "la contraseña debe tener al menos 6 caracteres")
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewPersistenceError("leer usuario", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), BcryptCost)
	if err != nil {
		return nil, err
	}
	role := entity.RoleUser
	if strings.EqualFold(in.Role, entity.RoleAdmin) {
		role = entity.RoleAdmin
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, domain.WrapPersistence("crear usuario", err)
	}
	return dto.NewUserResponse(user), nil
}

// Delete elimina un usuario. Solo ADMIN; un administrador no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if id == actor.UserID {
		return domain.NewValidationError("id", "no puede eliminar su propio usuario")
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.NewPersistenceError("leer usuario", err)
	}
	if user == nil {
		return domain.NewNotFoundError("user", id)
	}
	return domain.WrapPersistence("eliminar usuario", uc.repo.Delete(ctx, id))
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceError("leer usuario", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user", id)
	}
	return dto.NewUserResponse(user), nil
}

// UpdateProfile cambia el nombre y/o la contraseña del propio actor.
// Cambiar la contraseña exige la actual; sin cambios devuelve ValidationError.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, actor entity.Actor, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.repo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, domain.NewPersistenceError("leer usuario", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	changed := false
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "el nombre no puede estar vacío")
		}
		user.Name = name
		changed = true
	}
	if in.NewPassword != "" {
		if in.CurrentPassword == "" {
			return nil, domain.NewValidationError("currentPassword", "la contraseña actual es requerida")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return nil, domain.NewValidationError("currentPassword", "la contraseña actual es incorrecta")
		}
		if len(in.NewPassword) < MinPasswordLength {
			return nil, domain.NewValidationError("newPassword", "la nueva contraseña debe tener al menos 6 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), BcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		changed = true
	}
	if !changed {
		return nil, domain.NewValidationError("", "ningún cambio para guardar")
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, domain.WrapPersistence("actualizar perfil", err)
	}
	return dto.NewUserResponse(user), nil
}

// UpsertUser crea o actualiza (nombre, contraseña, rol) un usuario por email.
// Usado por el comando create_user para inicializar el administrador.
func (uc *UserUseCase) UpsertUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, bool, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < MinPasswordLength {
		return nil, false, domain.NewValidationError("", "email y contraseña (mín. 6) son requeridos")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), BcryptCost)
	if err != nil {
		return nil, false, err
	}
	role := entity.RoleUser
	if strings.EqualFold(in.Role, entity.RoleAdmin) {
		role = entity.RoleAdmin
	}
	now := time.Now()
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, domain.NewPersistenceError("leer usuario", err)
	}
	if existing != nil {
		existing.Name = strings.TrimSpace(in.Name)
		existing.PasswordHash = string(hash)
		existing.Role = role
		existing.UpdatedAt = now
		if err := uc.repo.Update(ctx, existing); err != nil {
			return nil, false, domain.WrapPersistence("actualizar usuario", err)
		}
		return dto.NewUserResponse(existing), false, nil
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, false, domain.WrapPersistence("crear usuario", err)
	}
	return dto.NewUserResponse(user), true, nil
}

func requireAdmin(actor entity.Actor) error {
	if actor.IsZero() {
		return domain.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
