package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

const testSecret = "test-secret"

func bearerFor(t *testing.T, role model.Role) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, utils.Identity{ID: 7, Email: "u@example.com", Role: role}, 5)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return "Bearer " + tok.Token
}

func doRequest(e *echo.Echo, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		ident, ok := CurrentIdentity(c)
		if !ok {
			t.Error("no identity on authenticated request")
		}
		return c.JSON(http.StatusOK, echo.Map{"id": ident.ID})
	}, JWTAuth(testSecret))

	t.Run("valid token", func(t *testing.T) {
		rec := doRequest(e, bearerFor(t, model.RoleUser))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		if rec := doRequest(e, ""); rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		if rec := doRequest(e, "Bearer junk"); rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := utils.NewAccessToken("other-secret", utils.Identity{ID: 7, Role: model.RoleUser}, 5)
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		if rec := doRequest(e, "Bearer "+tok.Token); rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/protected", ok, JWTAuth(testSecret), RequireRole(model.RoleModerator, model.RoleAdmin))

	cases := []struct {
		role model.Role
		want int
	}{
		{model.RoleModerator, http.StatusOK},
		{model.RoleAdmin, http.StatusOK},
		{model.RoleUser, http.StatusForbidden},
		{model.RoleEditor, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			if rec := doRequest(e, bearerFor(t, tc.role)); rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}

	t.Run("role check without auth is unauthorized", func(t *testing.T) {
		bare := echo.New()
		bare.GET("/protected", ok, RequireRole(model.RoleAdmin))
		if rec := doRequest(bare, ""); rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}
