package uploadimage

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

type ItemServiceMock struct {
	mock.Mock
}

func (m *ItemServiceMock) UploadImage(ctx context.Context, p models.Principal, rawID, originalName string, r io.Reader) (models.ItemView, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(ctx, p, rawID, originalName, string(data))
	return args.Get(0).(models.ItemView), args.Error(1)
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("other", "value"))
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestUploadImageHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	p := models.Principal{ID: 7}
	image := "stored.png"

	tests := []struct {
		name           string
		field          string
		mockCall       bool
		mockResp       models.ItemView
		mockErr        error
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "uploaded",
			field:          "file",
			mockCall:       true,
			mockResp:       models.ItemView{ID: 1, Title: "Camera", Price: 10, Image: &image, UserID: 7, CreatedAt: 5},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"id":1,"title":"Camera","price":10,"image":"stored.png","user_id":7,"created_at":5}`,
		},
		{
			name:     "too big",
			field:    "file",
			mockCall: true,
			mockErr: apperr.NewValidation(apperr.FieldError{
				Field: "file", Message: "The file 'photo.png' is too big",
			}),
			wantStatusCode: http.StatusUnprocessableEntity,
			wantBody:       `[{"field":"file","message":"The file 'photo.png' is too big"}]`,
		},
		{
			name:           "no file",
			wantStatusCode: http.StatusUnprocessableEntity,
			wantBody:       `[{"field":"file","message":"File is required"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ItemServiceMock)
			if tt.mockCall {
				svc.On("UploadImage", mock.Anything, p, "1", "photo.png", "png-bytes").Return(tt.mockResp, tt.mockErr).Once()
			}

			body, contentType := multipartBody(t, tt.field, "photo.png", "png-bytes")
			req := httptest.NewRequest(http.MethodPost, "/api/v1/item/1/image", body)
			req.Header.Set("Content-Type", contentType)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "1")
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			rec := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(rec, req.WithContext(middlewarectx.WithPrincipal(ctx, p)))

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestUploadImageHandler_Stream(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	p := models.Principal{ID: 7}

	newRequest := func(body io.Reader, contentType string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/item/1/image", body)
		req.Header.Set("Content-Type", contentType)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", "1")
		ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
		return req.WithContext(middlewarectx.WithPrincipal(ctx, p))
	}

	t.Run("file after other fields", func(t *testing.T) {
		body := &bytes.Buffer{}
		mw := multipart.NewWriter(body)
		require.NoError(t, mw.WriteField("title", "ignored"))
		fw, err := mw.CreateFormFile("file", "photo.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		svc := new(ItemServiceMock)
		svc.On("UploadImage", mock.Anything, p, "1", "photo.png", "png-bytes").Return(models.ItemView{ID: 1}, nil).Once()
		rec := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rec, newRequest(body, mw.FormDataContentType()))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("not multipart", func(t *testing.T) {
		svc := new(ItemServiceMock)
		rec := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rec, newRequest(bytes.NewBufferString(`{}`), "application/json"))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `[{"field":"file","message":"File is required"}]`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("missing boundary", func(t *testing.T) {
		svc := new(ItemServiceMock)
		rec := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rec, newRequest(bytes.NewBufferString("garbage"), "multipart/form-data"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertExpectations(t)
	})
}
