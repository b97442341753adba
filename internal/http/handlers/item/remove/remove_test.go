package remove

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

type ItemServiceMock struct {
	mock.Mock
}

func (m *ItemServiceMock) Remove(ctx context.Context, p models.Principal, rawID string) error {
	return m.Called(ctx, p, rawID).Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	p := models.Principal{ID: 7}

	tests := []struct {
		name           string
		id             string
		mockErr        error
		wantStatusCode int
	}{
		{name: "deleted", id: "1", wantStatusCode: http.StatusOK},
		{name: "not owner", id: "1", mockErr: apperr.NewForbidden(), wantStatusCode: http.StatusForbidden},
		{name: "missing", id: "99", mockErr: apperr.NewNotFound(), wantStatusCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ItemServiceMock)
			svc.On("Remove", mock.Anything, p, tt.id).Return(tt.mockErr).Once()

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/item/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			rec := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(rec, req.WithContext(middlewarectx.WithPrincipal(ctx, p)))

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Empty(t, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
