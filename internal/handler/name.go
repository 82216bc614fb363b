package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/service"
)

// NameHandler covers cast/crew person endpoints.
type NameHandler struct {
	Names *service.NameService
}

func NewNameHandler(names *service.NameService) *NameHandler {
	return &NameHandler{Names: names}
}

type nameReq struct {
	FullName    string `json:"fullName"`
	Description string `json:"description"`
}

type creditResp struct {
	MovieID    uint64 `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
	Role       string `json:"role"`
}

type nameResp struct {
	ID          uint64       `json:"id"`
	FullName    string       `json:"fullName"`
	Description string       `json:"description"`
	Movies      []creditResp `json:"movies"`
}

// Create inserts a person.
func (h *NameHandler) Create(c echo.Context) error {
	var req nameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FullName == "" || req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fullName/description required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	id, err := h.Names.Create(ctx, req.FullName, req.Description)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create name failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Update rewrites a person's fields.
func (h *NameHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid name id"})
	}
	var req nameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FullName == "" || req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fullName/description required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Names.Update(ctx, id, req.FullName, req.Description); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "this name does not exist in the collection"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update name failed"})
	}
	return c.NoContent(http.StatusOK)
}

// Get returns one person with their filmography.
func (h *NameHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid name id"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	details, err := h.Names.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "this name does not exist in the collection"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	resp := nameResp{
		ID:          details.Name.ID,
		FullName:    details.Name.FullName,
		Description: details.Name.Description,
		Movies:      make([]creditResp, 0, len(details.Credits)),
	}
	for _, cr := range details.Credits {
		resp.Movies = append(resp.Movies, creditResp{
			MovieID:    cr.MovieID,
			MovieTitle: cr.MovieTitle,
			Role:       string(cr.Role),
		})
	}
	return c.JSON(http.StatusOK, resp)
}
