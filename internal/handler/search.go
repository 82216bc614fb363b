package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/service"
)

// searchPageCount is the fixed page size of the combined search.
const searchPageCount = 5

// SearchHandler answers the combined catalog search across movie titles
// and cast names.
type SearchHandler struct {
	Movies *service.MovieService
	Names  *service.NameService
}

func NewSearchHandler(movies *service.MovieService, names *service.NameService) *SearchHandler {
	return &SearchHandler{Movies: movies, Names: names}
}

type searchMovieResp struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"releaseDate"`
	Rating      float64 `json:"rating"`
}

type searchNameResp struct {
	ID       uint64 `json:"id"`
	FullName string `json:"fullName"`
}

type searchResp struct {
	Movies          []searchMovieResp `json:"movies"`
	Names           []searchNameResp  `json:"names"`
	MoviesTotal     int               `json:"moviesTotal"`
	NamesTotal      int               `json:"namesTotal"`
	MoviesPageIndex int               `json:"moviesPageIndex"`
	NamesPageIndex  int               `json:"namesPageIndex"`
	PageCount       int               `json:"pageCount"`
}

// Search is public. searchType chooses names, movieTitle or all; each
// side pages independently via moviesPageIndex and namesPageIndex.
func (h *SearchHandler) Search(c echo.Context) error {
	text := c.QueryParam("searchText")
	if text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "searchText required"})
	}
	searchType := c.QueryParam("searchType")
	switch searchType {
	case "", "all":
		searchType = "all"
	case "names", "movieTitle":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "searchType must be names, movieTitle or all"})
	}
	moviesPage := queryInt(c, "moviesPageIndex", 0)
	namesPage := queryInt(c, "namesPageIndex", 0)
	if moviesPage < 0 || namesPage < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid paging"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	resp := searchResp{
		Movies:          []searchMovieResp{},
		Names:           []searchNameResp{},
		MoviesPageIndex: moviesPage,
		NamesPageIndex:  namesPage,
		PageCount:       searchPageCount,
	}

	if searchType == "all" || searchType == "movieTitle" {
		movies, total, err := h.Movies.Search(ctx, text, moviesPage, searchPageCount)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
		}
		resp.MoviesTotal = total
		for _, m := range movies {
			resp.Movies = append(resp.Movies, searchMovieResp{
				ID:          m.ID,
				Title:       m.Title,
				ReleaseDate: m.ReleaseDate.Format("2006-01-02"),
				Rating:      m.Rating,
			})
		}
	}
	if searchType == "all" || searchType == "names" {
		names, total, err := h.Names.Search(ctx, text, namesPage, searchPageCount)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
		}
		resp.NamesTotal = total
		for _, n := range names {
			resp.Names = append(resp.Names, searchNameResp{ID: n.ID, FullName: n.FullName})
		}
	}
	return c.JSON(http.StatusOK, resp)
}
