package handler

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// UserHandler covers the administrative user endpoints: internal-member
// creation (admin) and user deletion (moderator).
type UserHandler struct {
	Accounts *service.AccountService
}

func NewUserHandler(accounts *service.AccountService) *UserHandler {
	return &UserHandler{Accounts: accounts}
}

type internalMemberReq struct {
	NickName        string `json:"nickName"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// CreateInternalMember creates an editor or moderator account.
func (h *UserHandler) CreateInternalMember(c echo.Context) error {
	var req internalMemberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid email required"})
	}
	if req.NickName == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nickName/password required"})
	}
	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passwords don't match"})
	}
	role := model.Role(req.Role)
	if role != model.RoleEditor && role != model.RoleModerator {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be editor or moderator"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Accounts.CreateInternalMember(ctx, req.NickName, req.Email, req.Password, role); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create member failed"})
	}
	return c.NoContent(http.StatusCreated)
}

// DeleteUser removes a target account. Admin accounts answer 404 no
// matter who asks, same as a missing user.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Accounts.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found or you cant delete"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete user failed"})
	}

	go queue.PublishRatingRefreshed(context.Background(), queue.RatingRefreshedEvent{
		UserID: id, Trigger: "user.deleted",
	})
	return c.NoContent(http.StatusOK)
}
