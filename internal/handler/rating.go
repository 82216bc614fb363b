package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// RatingHandler covers standalone score endpoints. Review-linked scores
// go through ReviewHandler.
type RatingHandler struct {
	Ratings *service.RatingService
}

func NewRatingHandler(ratings *service.RatingService) *RatingHandler {
	return &RatingHandler{Ratings: ratings}
}

type createRatingReq struct {
	MovieID uint64 `json:"movieId"`
	Score   int    `json:"score"`
}

type updateRatingReq struct {
	Score int `json:"score"`
}

func validScore(score int) bool { return score >= 1 && score <= 5 }

// Create inserts a standalone rating for the calling user and refreshes
// the movie aggregate. Scoring the same movie twice is a conflict.
func (h *RatingHandler) Create(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	var req createRatingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MovieID == 0 || !validScore(req.Score) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movieId and a score of 1..5 required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Ratings.Create(ctx, ident.ID, req.MovieID, req.Score); err != nil {
		switch {
		case errors.Is(err, service.ErrRatingExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "this movie does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create rating failed"})
	}

	go queue.PublishRatingRefreshed(context.Background(), queue.RatingRefreshedEvent{
		MovieID: req.MovieID, UserID: ident.ID, Trigger: "rating.created",
	})
	return c.NoContent(http.StatusCreated)
}

// Update changes the score of a rating the caller owns. Anyone else is
// told the rating does not exist.
func (h *RatingHandler) Update(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rating id"})
	}
	var req updateRatingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !validScore(req.Score) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a score of 1..5 required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Ratings.Update(ctx, ident.ID, id, req.Score); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "this rating does not exist or you cant modify it"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update rating failed"})
	}

	go queue.PublishRatingRefreshed(context.Background(), queue.RatingRefreshedEvent{
		UserID: ident.ID, Trigger: "rating.updated",
	})
	return c.NoContent(http.StatusOK)
}

// Delete removes any rating; route policy limits this to moderators and
// admins. A linked review is left in place.
func (h *RatingHandler) Delete(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rating id"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Ratings.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "this rating does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete rating failed"})
	}

	go queue.PublishRatingRefreshed(context.Background(), queue.RatingRefreshedEvent{
		UserID: ident.ID, Trigger: "rating.deleted",
	})
	return c.NoContent(http.StatusOK)
}
