package accessrights_test

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unilanding/cms-backend/internal"
	"github.com/unilanding/cms-backend/internal/accessrights"
)

type mockPermissionReader struct {
	grants map[int64][]accessrights.Grant
	err    error
}

func (m *mockPermissionReader) GrantsForUser(userID int64) ([]accessrights.Grant, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.grants[userID], nil
}

var _ = Describe("Gate", func() {
	var (
		reader *mockPermissionReader
		gate   *accessrights.Gate
		next   http.Handler
		called bool
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	request := func(user *internal.AuthUser) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if user != nil {
			req = req.WithContext(internal.ContextWithUser(req.Context(), user))
		}
		return req
	}

	BeforeEach(func() {
		reader = &mockPermissionReader{grants: make(map[int64][]accessrights.Grant)}
		gate = accessrights.NewGate(reader, testLogger)
		called = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		})
	})

	Context("with no declared requirements", func() {
		It("passes the request through untouched", func() {
			handler := gate.Require()(next)
			rec := httptest.NewRecorder()

			// No identity in context; the gate must not even look.
			handler.ServeHTTP(rec, request(nil))

			Expect(called).To(BeTrue())
			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})

	Context("when the identity is missing from the context", func() {
		It("responds 401 with the identity error code", func() {
			handler := gate.Require(accessrights.Req("Blog", accessrights.CanRead))(next)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, request(nil))

			Expect(called).To(BeFalse())
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("IDENTITY_MISSING"))
		})
	})

	Context("when the grant lookup fails", func() {
		It("responds 500", func() {
			reader.err = errors.New("connection refused")
			handler := gate.Require(accessrights.Req("Blog", accessrights.CanRead))(next)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, request(&internal.AuthUser{ID: 7, FullName: "Ada Lovelace"}))

			Expect(called).To(BeFalse())
			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Context("when the caller holds every required grant", func() {
		It("invokes the next handler", func() {
			reader.grants[7] = []accessrights.Grant{
				{ModuleName: "Blog", CanRead: true, CanUpdate: true},
			}
			handler := gate.Require(
				accessrights.Req("Blog", accessrights.CanRead),
				accessrights.Req("Blog", accessrights.CanUpdate),
			)(next)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, request(&internal.AuthUser{ID: 7, FullName: "Ada Lovelace"}))

			Expect(called).To(BeTrue())
			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})

	Context("when grants are missing", func() {
		It("responds 403 naming the user and every missing pair", func() {
			reader.grants[7] = []accessrights.Grant{
				{ModuleName: "Blog", CanRead: true},
			}
			handler := gate.Require(
				accessrights.Req("Blog", accessrights.CanUpdate),
				accessrights.Req("Images", accessrights.CanDelete),
			)(next)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, request(&internal.AuthUser{ID: 7, FullName: "Ada Lovelace"}))

			Expect(called).To(BeFalse())
			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(rec.Body.String()).To(ContainSubstring(
				"User Ada Lovelace does not have the required permissions: Blog.canUpdate, Images.canDelete"))
		})
	})

	Context("when the user has zero grant rows", func() {
		It("denies instead of erroring", func() {
			handler := gate.Require(accessrights.Req("Blog", accessrights.CanRead))(next)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, request(&internal.AuthUser{ID: 42, FullName: "Grace Hopper"}))

			Expect(called).To(BeFalse())
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})
	})
})
