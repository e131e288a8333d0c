package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/hrkit/hr-management/internal"
)

func TestTransport(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Transport Suite")
}

var _ = ginkgo.Describe("Pagination", func() {
	ginkgo.It("computes total pages with a ceiling", func() {
		p := NewPagination(12, 2, 5)
		gomega.Expect(p.TotalPages).To(gomega.Equal(3))
		gomega.Expect(p.Total).To(gomega.Equal(int64(12)))
	})

	ginkgo.It("offsets from page one", func() {
		gomega.Expect(PageParams{Page: 1, Limit: 10}.Offset()).To(gomega.Equal(0))
		gomega.Expect(PageParams{Page: 3, Limit: 5}.Offset()).To(gomega.Equal(10))
	})
})

var _ = ginkgo.Describe("BaseHandler", func() {
	var handler *BaseHandler

	ginkgo.BeforeEach(func() {
		handler = NewBaseHandler(slog.Default())
	})

	ginkgo.Describe("ParsePageParams", func() {
		ginkgo.It("defaults missing and malformed values", func() {
			req := httptest.NewRequest(http.MethodGet, "/?page=abc&limit=-3", nil)
			params := handler.ParsePageParams(req)
			gomega.Expect(params.Page).To(gomega.Equal(DefaultPage))
			gomega.Expect(params.Limit).To(gomega.Equal(DefaultLimit))
		})

		ginkgo.It("caps the limit at 100", func() {
			req := httptest.NewRequest(http.MethodGet, "/?page=2&limit=500", nil)
			params := handler.ParsePageParams(req)
			gomega.Expect(params.Page).To(gomega.Equal(2))
			gomega.Expect(params.Limit).To(gomega.Equal(DefaultLimit))
		})
	})

	ginkgo.Describe("ExtractToken", func() {
		ginkgo.It("prefers the cookie over the bearer header", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "cookie-token"})
			req.Header.Set("Authorization", "Bearer header-token")
			gomega.Expect(handler.ExtractToken(req)).To(gomega.Equal("cookie-token"))
		})

		ginkgo.It("falls back to the bearer header", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer header-token")
			gomega.Expect(handler.ExtractToken(req)).To(gomega.Equal("header-token"))
		})

		ginkgo.It("returns empty when neither is present", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			gomega.Expect(handler.ExtractToken(req)).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("WriteAppError", func() {
		ginkgo.It("uses the AppError's own status and message", func() {
			rec := httptest.NewRecorder()
			appErr := internal.NewConflictError("Name already taken", internal.ErrCodeNameTaken)

			handler.WriteAppError(rec, appErr, "fallback")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))

			var env Envelope
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &env)).To(gomega.Succeed())
			gomega.Expect(env.Success).To(gomega.BeFalse())
			gomega.Expect(env.Message).To(gomega.Equal("Name already taken"))
		})

		ginkgo.It("surfaces validation details as a path/message list", func() {
			rec := httptest.NewRecorder()
			appErr := internal.NewValidationErrors([]internal.ValidationError{
				{Path: "email", Message: "email is required"},
			})

			handler.WriteAppError(rec, appErr, "fallback")

			var env Envelope
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &env)).To(gomega.Succeed())
			gomega.Expect(env.Errors).To(gomega.HaveLen(1))
			gomega.Expect(env.Errors[0].Path).To(gomega.Equal("email"))
		})

		ginkgo.It("reports unexpected errors as 500 with the raw text", func() {
			rec := httptest.NewRecorder()

			handler.WriteAppError(rec, errors.New("connection refused"), "Server error")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusInternalServerError))

			var env Envelope
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &env)).To(gomega.Succeed())
			gomega.Expect(env.Message).To(gomega.Equal("Server error"))
			gomega.Expect(env.Error).To(gomega.Equal("connection refused"))
		})
	})
})
