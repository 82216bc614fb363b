package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// MovieHandler covers the public catalog reads and the editorial movie
// mutations.
type MovieHandler struct {
	Movies *service.MovieService
}

func NewMovieHandler(movies *service.MovieService) *MovieHandler {
	return &MovieHandler{Movies: movies}
}

// ----- DTOs -----

type castEntryReq struct {
	NameID uint64 `json:"nameId"`
	Role   string `json:"role"`
}

type movieReq struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ReleaseDate string         `json:"releaseDate"`
	CastAndCrew []castEntryReq `json:"castAndCrew"`
}

type castMemberResp struct {
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type movieResp struct {
	ID          uint64           `json:"id"`
	Title       string           `json:"title"`
	Rating      float64          `json:"rating"`
	Description string           `json:"description"`
	ReleaseDate string           `json:"releaseDate"`
	CastAndCrew []castMemberResp `json:"castAndCrew,omitempty"`
}

// parseMovieReq validates the shared create/update body and converts it
// to domain types.
func parseMovieReq(req movieReq, requireCast bool) (model.Movie, []service.CastEntry, string) {
	if req.Title == "" || req.Description == "" {
		return model.Movie{}, nil, "title/description required"
	}
	releaseDate, err := time.Parse(time.RFC3339, req.ReleaseDate)
	if err != nil {
		return model.Movie{}, nil, "releaseDate must be RFC 3339"
	}
	if requireCast && len(req.CastAndCrew) == 0 {
		return model.Movie{}, nil, "castAndCrew required"
	}
	cast := make([]service.CastEntry, 0, len(req.CastAndCrew))
	for _, e := range req.CastAndCrew {
		role := model.CastRole(e.Role)
		if e.NameID == 0 || !role.Valid() {
			return model.Movie{}, nil, "castAndCrew entries need nameId and a valid role"
		}
		cast = append(cast, service.CastEntry{NameID: e.NameID, Role: role})
	}
	m := model.Movie{Title: req.Title, Description: req.Description, ReleaseDate: releaseDate}
	return m, cast, ""
}

// Create inserts a movie with its cast list. The aggregate rating starts
// at 0 regardless of the body.
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m, cast, msg := parseMovieReq(req, false)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	id, err := h.Movies.Create(ctx, m, cast)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Update rewrites a movie's metadata and replaces its cast list.
func (h *MovieHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m, cast, msg := parseMovieReq(req, true)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Movies.Update(ctx, id, m, cast); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "this movie does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	return c.NoContent(http.StatusOK)
}

// Get returns one movie with its cast and crew.
func (h *MovieHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	details, err := h.Movies.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "this movie does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	resp := movieResp{
		ID:          details.Movie.ID,
		Title:       details.Movie.Title,
		Rating:      details.Movie.Rating,
		Description: details.Movie.Description,
		ReleaseDate: details.Movie.ReleaseDate.UTC().Format(time.RFC3339),
		CastAndCrew: make([]castMemberResp, 0, len(details.Cast)),
	}
	for _, cm := range details.Cast {
		resp.CastAndCrew = append(resp.CastAndCrew, castMemberResp{FullName: cm.FullName, Role: string(cm.Role)})
	}
	return c.JSON(http.StatusOK, resp)
}

// List returns one page of the catalog.
func (h *MovieHandler) List(c echo.Context) error {
	pageIndex := queryInt(c, "pageIndex", 0)
	pageCount := queryInt(c, "pageCount", 30)

	ctx, cancel := requestCtx(c)
	defer cancel()

	movies, err := h.Movies.List(ctx, pageIndex, pageCount)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	resp := make([]movieResp, 0, len(movies))
	for _, m := range movies {
		resp = append(resp, movieResp{
			ID:          m.ID,
			Title:       m.Title,
			Rating:      m.Rating,
			Description: m.Description,
			ReleaseDate: m.ReleaseDate.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, resp)
}
