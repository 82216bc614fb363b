package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// ReviewHandler covers the review endpoints. Every mutation also moves
// the caller's score for the movie, so the service keeps both in step.
type ReviewHandler struct {
	Reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

type reviewReq struct {
	MovieID    uint64 `json:"movieId"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	HasSpoiler bool   `json:"hasSpoiler"`
	Score      int    `json:"score"`
}

type reviewResp struct {
	CreatorName string `json:"creatorName"`
	MovieTitle  string `json:"movieTitle"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	HasSpoiler  bool   `json:"hasSpoiler"`
	Score       int    `json:"score"`
}

type reviewPageResp struct {
	PageIndex int          `json:"pageIndex"`
	PageCount int          `json:"pageCount"`
	Total     int          `json:"total"`
	Data      []reviewResp `json:"data"`
}

func (r reviewReq) validate(requireMovie bool) string {
	if requireMovie && r.MovieID == 0 {
		return "movieId required"
	}
	if r.Title == "" || r.Text == "" {
		return "title and text required"
	}
	if !validScore(r.Score) {
		return "a score of 1..5 required"
	}
	return ""
}

// List is public. Filters: userId, movieId, hideSpoilers, plus
// pageIndex/pageCount paging.
func (h *ReviewHandler) List(c echo.Context) error {
	pageIndex := queryInt(c, "pageIndex", 0)
	pageCount := queryInt(c, "pageCount", 10)
	if pageIndex < 0 || pageCount <= 0 || pageCount > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid paging"})
	}
	f := service.ReviewFilter{
		UserID:       uint64(queryInt(c, "userId", 0)),
		MovieID:      uint64(queryInt(c, "movieId", 0)),
		HideSpoilers: c.QueryParam("hideSpoilers") == "true",
		Offset:       pageIndex * pageCount,
		Limit:        pageCount,
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	rows, total, err := h.Reviews.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reviews failed"})
	}
	data := make([]reviewResp, 0, len(rows))
	for _, r := range rows {
		data = append(data, reviewResp{
			CreatorName: r.CreatorName,
			MovieTitle:  r.MovieTitle,
			Title:       r.ReviewTitle,
			Text:        r.Text,
			HasSpoiler:  r.HasSpoiler,
			Score:       r.Score,
		})
	}
	return c.JSON(http.StatusOK, reviewPageResp{
		PageIndex: pageIndex,
		PageCount: pageCount,
		Total:     total,
		Data:      data,
	})
}

// Create writes a review and its linked score in one transaction. A
// second review for the same movie by the same user is a conflict.
func (h *ReviewHandler) Create(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(true); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	in := service.ReviewInput{
		MovieID:    req.MovieID,
		Title:      req.Title,
		Text:       req.Text,
		HasSpoiler: req.HasSpoiler,
		Score:      req.Score,
	}
	if err := h.Reviews.Create(ctx, ident.ID, in); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "this movie does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}

	go queue.PublishRatingRefreshed(context.Background(), queue.RatingRefreshedEvent{
		MovieID: req.MovieID, UserID: ident.ID, Trigger: "review.created",
	})
	return c.NoContent(http.StatusCreated)
}

// Update rewrites a review the caller owns, score included. A non-zero
// movieId moves the review and its linked score onto that movie.
// Non-owners get the same answer as a missing review.
func (h *ReviewHandler) Update(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(false); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	in := service.ReviewInput{
		MovieID:    req.MovieID,
		Title:      req.Title,
		Text:       req.Text,
		HasSpoiler: req.HasSpoiler,
		Score:      req.Score,
	}
	if err := h.Reviews.Update(ctx, ident.ID, id, in); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "this review does not exist or you cant modify it"})
		case errors.Is(err, service.ErrReviewExists), errors.Is(err, service.ErrRatingExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update review failed"})
	}

	go queue.PublishRatingRefreshed(context.Background(), queue.RatingRefreshedEvent{
		UserID: ident.ID, Trigger: "review.updated",
	})
	return c.NoContent(http.StatusOK)
}

// Delete removes a review for its owner or any moderator. The linked
// rating goes with it.
func (h *ReviewHandler) Delete(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Reviews.Delete(ctx, ident.ID, ident.Role, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "this review does not exist or you cant delete it"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete review failed"})
	}

	go queue.PublishRatingRefreshed(context.Background(), queue.RatingRefreshedEvent{
		UserID: ident.ID, Trigger: "review.deleted",
	})
	return c.NoContent(http.StatusOK)
}
