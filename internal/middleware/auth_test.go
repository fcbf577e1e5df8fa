package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"daybook/internal/services"
	"daybook/internal/testutil"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, services.UserServicer, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	userService := services.NewUserService(db)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(userService), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	return router, userService, db
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid_access_token", func(t *testing.T) {
		router, userService, _ := setupAuthRouter(t)

		user, err := userService.CreateUser("auth@example.com", "password123", "Auth")
		testutil.AssertNoError(t, err)

		token, err := GenerateAccessToken(user)
		testutil.AssertNoError(t, err)

		w := request(router, "Bearer "+token)
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		router, _, _ := setupAuthRouter(t)

		w := request(router, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("malformed_header", func(t *testing.T) {
		router, _, _ := setupAuthRouter(t)

		w := request(router, "Token abc")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("garbage_token", func(t *testing.T) {
		router, _, _ := setupAuthRouter(t)

		w := request(router, "Bearer not.a.token")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("refresh_token_rejected_as_access", func(t *testing.T) {
		router, userService, _ := setupAuthRouter(t)

		user, err := userService.CreateUser("refresh@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		token, err := GenerateRefreshToken(user)
		testutil.AssertNoError(t, err)

		w := request(router, "Bearer "+token)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("deactivated_user_rejected", func(t *testing.T) {
		router, userService, db := setupAuthRouter(t)

		user, err := userService.CreateUser("inactive@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		token, err := GenerateAccessToken(user)
		testutil.AssertNoError(t, err)

		// Deactivate after issuing the token; the middleware re-reads the user.
		if err := db.Model(user).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate user: %v", err)
		}

		w := request(router, "Bearer "+token)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("token_for_deleted_user_rejected", func(t *testing.T) {
		router, userService, db := setupAuthRouter(t)

		user, err := userService.CreateUser("gone@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		token, err := GenerateAccessToken(user)
		testutil.AssertNoError(t, err)

		if err := db.Delete(user).Error; err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}

		w := request(router, "Bearer "+token)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}

func TestValidateRefreshToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	userService := services.NewUserService(db)

	user, err := userService.CreateUser("tokens@example.com", "password123", "")
	testutil.AssertNoError(t, err)

	t.Run("valid", func(t *testing.T) {
		token, err := GenerateRefreshToken(user)
		testutil.AssertNoError(t, err)

		claims, err := ValidateRefreshToken(token)
		testutil.AssertNoError(t, err)
		if claims.UserID != user.ID {
			t.Errorf("expected user %s, got %s", user.ID, claims.UserID)
		}
	})

	t.Run("access_token_rejected", func(t *testing.T) {
		token, err := GenerateAccessToken(user)
		testutil.AssertNoError(t, err)

		if _, err := ValidateRefreshToken(token); err == nil {
			t.Error("expected access token to be rejected")
		}
	})

	t.Run("garbage_rejected", func(t *testing.T) {
		if _, err := ValidateRefreshToken("garbage"); err == nil {
			t.Error("expected garbage token to be rejected")
		}
	})
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-a")
	b := HashToken("token-b")
	if a == b {
		t.Error("expected distinct hashes for distinct tokens")
	}
	if a != HashToken("token-a") {
		t.Error("expected hashing to be deterministic")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(a))
	}
}
