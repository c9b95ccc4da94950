package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
	"github.com/anbar/anbar-api/pkg/logger"
)

// AdminUseCase gestión de usuarios desde el panel de administración.
// Cada acción deja una entrada en el log de actividad del administrador.
type AdminUseCase struct {
	users repository.UserRepository
	logs  repository.ActivityLogRepository
	log   *logger.Logger
	now   func() time.Time
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(users repository.UserRepository, logs repository.ActivityLogRepository, log *logger.Logger) *AdminUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AdminUseCase{users: users, logs: logs, log: log.Component("admin"), now: time.Now}
}

// List usuarios paginados, más recientes primero.
func (uc *AdminUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.Normalize(defaultPageLimit, maxPageLimit)
	list, total, err := uc.users.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *ToUserResponse(u))
	}
	return &dto.UserListResponse{Data: out, Pagination: dto.NewPagination(page, total)}, nil
}

// Stats conteos de usuarios.
func (uc *AdminUseCase) Stats(ctx context.Context) (*dto.UserStatsResponse, error) {
	s, err := uc.users.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.UserStatsResponse{Total: s.Total, Active: s.Active, Inactive: s.Inactive, Admins: s.Admins}, nil
}

// Create da de alta un usuario.
func (uc *AdminUseCase) Create(ctx context.Context, actorID int64, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	u := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         role,
		IsAdmin:      in.IsAdmin || role == entity.RoleAdmin,
		IsActive:     active,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	uc.audit(ctx, actorID, "create_user", u.ID, map[string]any{"email": u.Email, "role": u.Role})
	return ToUserResponse(u), nil
}

// Update cambia los campos enviados. Un administrador no puede quitarse
// a sí mismo el rol ni desactivarse.
func (uc *AdminUseCase) Update(ctx context.Context, actorID, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if actorID == id {
		if (in.IsAdmin != nil && !*in.IsAdmin) || (in.IsActive != nil && !*in.IsActive) ||
			(in.Role != nil && *in.Role != entity.RoleAdmin) {
			return nil, fmt.Errorf("%w: no puede degradarse a sí mismo", domain.ErrConflict)
		}
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != u.Email {
			other, err := uc.users.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != id {
				return nil, domain.ErrEmailAlreadyExists
			}
			u.Email = email
		}
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if in.FullName != nil {
		u.FullName = in.FullName
	}
	if in.Role != nil {
		u.Role = *in.Role
		if u.Role == entity.RoleAdmin {
			u.IsAdmin = true
		}
	}
	if in.IsAdmin != nil {
		u.IsAdmin = *in.IsAdmin
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	uc.audit(ctx, actorID, "update_user", u.ID, map[string]any{"email": u.Email})
	return ToUserResponse(u), nil
}

// Delete elimina un usuario y su log de actividad. No se permite borrarse a sí mismo.
func (uc *AdminUseCase) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return fmt.Errorf("%w: no puede eliminarse a sí mismo", domain.ErrConflict)
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	if _, err := uc.logs.DeleteByUser(ctx, id); err != nil {
		return err
	}
	if err := uc.users.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit(ctx, actorID, "delete_user", id, map[string]any{"email": u.Email})
	return nil
}

// audit registra la acción; un fallo solo se loguea.
func (uc *AdminUseCase) audit(ctx context.Context, actorID int64, action string, targetID int64, meta map[string]any) {
	meta["target_user_id"] = targetID
	raw, _ := json.Marshal(meta)
	now := uc.now()
	entry := newLogEntry(actorID, dto.ActivityLogEntry{
		Level:    entity.LogLevelSuccess,
		Category: "admin",
		Action:   action,
		Metadata: raw,
	}, now)
	if _, err := uc.logs.InsertBatch(ctx, []entity.ActivityLog{entry}); err != nil {
		uc.log.Error().Err(err).Str("action", action).Int64("actor_id", actorID).Msg("no se pudo registrar la acción")
	}
}

// ToUserResponse convierte la entidad sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsAdmin:   u.IsAdmin,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
