package create

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

type ItemServiceMock struct {
	mock.Mock
}

func (m *ItemServiceMock) Create(ctx context.Context, p models.Principal, in models.ItemInput) (models.ItemView, error) {
	args := m.Called(ctx, p, in)
	return args.Get(0).(models.ItemView), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	p := models.Principal{ID: 7}

	tests := []struct {
		name           string
		body           string
		principal      bool
		in             models.ItemInput
		mockResp       models.ItemView
		mockErr        error
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "create item",
			body:           `{"title":"Camera X1","price":120.5}`,
			principal:      true,
			in:             models.ItemInput{Title: "Camera X1", Price: 120.5},
			mockResp:       models.ItemView{ID: 1, Title: "Camera X1", Price: 120.5, UserID: 7, CreatedAt: 1000},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"id":1,"title":"Camera X1","price":120.5,"image":null,"user_id":7,"created_at":1000}`,
		},
		{
			name:      "empty payload",
			body:      `{}`,
			principal: true,
			in:        models.ItemInput{},
			mockErr: apperr.NewValidation(
				apperr.FieldError{Field: "title", Message: "Title is required"},
				apperr.FieldError{Field: "price", Message: "Price is required"},
				apperr.FieldError{Field: "price", Message: "Wrong price"},
			),
			wantStatusCode: http.StatusUnprocessableEntity,
			wantBody: `[{"field":"title","message":"Title is required"},` +
				`{"field":"price","message":"Price is required"},` +
				`{"field":"price","message":"Wrong price"}]`,
		},
		{
			name:           "number in title field",
			body:           `{"title":12345,"price":10}`,
			principal:      true,
			in:             models.ItemInput{Title: "12345", Price: 10.0},
			mockResp:       models.ItemView{ID: 2, Title: "12345", Price: 10, UserID: 7, CreatedAt: 1000},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"id":2,"title":"12345","price":10,"image":null,"user_id":7,"created_at":1000}`,
		},
		{
			name:      "array in title field",
			body:      `{"title":[1,2],"price":10}`,
			principal: true,
			in:        models.ItemInput{Title: "[1,2]", Price: 10.0},
			mockErr: apperr.NewValidation(
				apperr.FieldError{Field: "title", Message: "Title should contain at least 3 characters"},
			),
			wantStatusCode: http.StatusUnprocessableEntity,
			wantBody:       `[{"field":"title","message":"Title should contain at least 3 characters"}]`,
		},
		{
			name:           "unauthenticated",
			body:           `{"title":"Camera X1","price":120.5}`,
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ItemServiceMock)
			if tt.principal {
				svc.On("Create", mock.Anything, p, tt.in).Return(tt.mockResp, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/item", strings.NewReader(tt.body))
			if tt.principal {
				req = req.WithContext(middlewarectx.WithPrincipal(req.Context(), p))
			}
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
