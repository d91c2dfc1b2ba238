package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/service"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// UsersHandler exposes the user CRUD endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.NewUserResponses(users))
}

// Get handles GET /api/users/:userId.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.Context(), c.Params("userId"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User")
		}
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	req := BodyFromContext[dto.CreateUserRequest](c)
	if req == nil {
		return apperrors.NewInternalError(errors.New("missing validated body"))
	}

	_, token, err := h.users.Create(c.Context(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return apperrors.NewConflict(domain.ErrEmailTaken.Error(), nil)
		}
		return apperrors.NewInternalError(err)
	}

	return c.Status(http.StatusCreated).JSON(dto.CreateUserResponse{
		Message: "user created successfully",
		Token:   token,
	})
}

// Update handles PUT /api/users/:userId.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	req := BodyFromContext[dto.UpdateUserRequest](c)
	if req == nil {
		return apperrors.NewInternalError(errors.New("missing validated body"))
	}

	user, err := h.users.Update(c.Context(), c.Params("userId"), service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return apperrors.NewNotFound("User")
		case errors.Is(err, domain.ErrEmailTaken):
			return apperrors.NewConflict(domain.ErrEmailTaken.Error(), nil)
		}
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Delete handles DELETE /api/users/:userId.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	user, err := h.users.Delete(c.Context(), c.Params("userId"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User")
		}
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.NewUserResponse(user))
}
