package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/transport"
	"github.com/hrkit/hr-management/internal/user"
)

var _ = ginkgo.Describe("AuthMiddleware", func() {
	var (
		handler *Handler
		tokens  *JWTTokenGenerator
		next    http.Handler
		seen    *internal.Identity
	)

	ginkgo.BeforeEach(func() {
		repo := newMockUserRepository()
		tokens = NewJWTTokenGenerator("test-secret-at-least-16", time.Hour)
		service := NewService(repo, tokens, bcrypt.MinCost, slog.Default())
		handler = NewHandler(service, internal.SecurityConfig{
			JWTSecret:     "test-secret-at-least-16",
			TokenDuration: time.Hour,
		})

		seen = nil
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity, ok := internal.IdentityFromContext(r.Context()); ok {
				seen = identity
			}
			w.WriteHeader(http.StatusOK)
		})
	})

	ginkgo.It("rejects a request with no token at all as 401", func() {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()

		handler.AuthMiddleware(next).ServeHTTP(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("No token, authorization denied"))
		gomega.Expect(seen).To(gomega.BeNil())
	})

	ginkgo.It("rejects a malformed token as 403, distinct from the no-token case", func() {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()

		handler.AuthMiddleware(next).ServeHTTP(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("Invalid token"))
	})

	ginkgo.It("accepts a bearer token and attaches the identity", func() {
		token, err := tokens.Generate("u-active", "active@example.com", user.RoleAdmin)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.AuthMiddleware(next).ServeHTTP(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(seen).NotTo(gomega.BeNil())
		gomega.Expect(seen.UserID).To(gomega.Equal("u-active"))
		gomega.Expect(seen.Role).To(gomega.Equal(user.RoleAdmin))
	})

	ginkgo.It("prefers the cookie over the bearer header", func() {
		cookieToken, err := tokens.Generate("u-active", "active@example.com", user.RoleEmployee)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: transport.TokenCookieName, Value: cookieToken})
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()

		handler.AuthMiddleware(next).ServeHTTP(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(seen).NotTo(gomega.BeNil())
	})
})

var _ = ginkgo.Describe("RequireRole", func() {
	var (
		handler *Handler
		next    http.Handler
	)

	ginkgo.BeforeEach(func() {
		repo := newMockUserRepository()
		tokens := NewJWTTokenGenerator("test-secret-at-least-16", time.Hour)
		service := NewService(repo, tokens, bcrypt.MinCost, slog.Default())
		handler = NewHandler(service, internal.SecurityConfig{})
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	ginkgo.It("rejects a request with no identity as 401", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rec := httptest.NewRecorder()

		handler.RequireRole(user.RoleAdmin)(next).ServeHTTP(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("Not authenticated"))
	})

	ginkgo.It("rejects a wrong role as 403", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		ctx := internal.ContextWithIdentity(req.Context(), &internal.Identity{UserID: "u-1", Role: user.RoleClient})
		rec := httptest.NewRecorder()

		handler.RequireRole(user.RoleAdmin)(next).ServeHTTP(rec, req.WithContext(ctx))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("You don't have permission to access this resource"))
	})

	ginkgo.It("passes an allowed role through", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		ctx := internal.ContextWithIdentity(req.Context(), &internal.Identity{UserID: "u-1", Role: user.RoleAdmin})
		rec := httptest.NewRecorder()

		handler.RequireRole(user.RoleAdmin)(next).ServeHTTP(rec, req.WithContext(ctx))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
	})
})
