package read

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

	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

type UserServiceMock struct {
	mock.Mock
}

func (m *UserServiceMock) Get(ctx context.Context, rawID string) (models.UserView, error) {
	args := m.Called(ctx, rawID)
	return args.Get(0).(models.UserView), args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		id             string
		mockResp       models.UserView
		mockErr        error
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "found",
			id:             "5",
			mockResp:       models.UserView{ID: 5, Name: "Bob", Email: "bob@example.com"},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"id":5,"name":"Bob","email":"bob@example.com","phone":null}`,
		},
		{
			name:           "not found",
			id:             "abc",
			mockErr:        apperr.NewNotFound(),
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(UserServiceMock)
			svc.On("Get", mock.Anything, tt.id).Return(tt.mockResp, tt.mockErr).Once()

			req := httptest.NewRequest(http.MethodGet, "/api/v1/user/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantBody == "" {
				assert.Empty(t, rec.Body.String())
			} else {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}
