package item

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/marketplace/internal/filestore"
	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/models"
	"github.com/magabrotheeeer/marketplace/internal/services/upload"
	"github.com/magabrotheeeer/marketplace/internal/services/validation"
	"github.com/magabrotheeeer/marketplace/internal/storage"
)

type ItemRepoMock struct {
	mock.Mock
}

func (m *ItemRepoMock) CreateItem(ctx context.Context, it models.Item) (int64, error) {
	args := m.Called(ctx, it)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ItemRepoMock) ItemByID(ctx context.Context, id int64) (*models.Item, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(*models.Item)
	return it, args.Error(1)
}

func (m *ItemRepoMock) ListItems(ctx context.Context, f models.ItemFilter) ([]models.Item, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]models.Item)
	return items, args.Error(1)
}

func (m *ItemRepoMock) UpdateItem(ctx context.Context, id int64, f models.ItemFields, updatedAt int64) error {
	return m.Called(ctx, id, f, updatedAt).Error(0)
}

func (m *ItemRepoMock) DeleteItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ItemRepoMock) SetItemImage(ctx context.Context, id int64, image *string, updatedAt int64) error {
	return m.Called(ctx, id, image, updatedAt).Error(0)
}

type GuardMock struct {
	mock.Mock
}

func (m *GuardMock) Attach(ctx context.Context, p models.Principal, rawID string, f filestore.File) (*models.Item, error) {
	args := m.Called(ctx, p, rawID, f)
	it, _ := args.Get(0).(*models.Item)
	return it, args.Error(1)
}

func (m *GuardMock) Detach(ctx context.Context, p models.Principal, rawID string) error {
	return m.Called(ctx, p, rawID).Error(0)
}

func (m *GuardMock) MaxSize() int64 { return 1 << 20 }

// countingReader считает байты, прочитанные из источника
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newService(t *testing.T, items ItemRepository, guard ImageGuard) (*Service, *filestore.Local) {
	t.Helper()
	files, err := filestore.NewLocal(t.TempDir())
	require.NoError(t, err)
	s := NewService(items, validation.New(nil), files, guard, newNoopLogger())
	s.now = func() time.Time { return time.UnixMilli(1000) }
	return s, files
}

func priceOf(f float64) *float64 { return &f }

var owner = models.Principal{ID: 7}

func TestService_Create(t *testing.T) {
	items := new(ItemRepoMock)
	s, _ := newService(t, items, new(GuardMock))
	ctx := context.Background()

	created := &models.Item{ID: 1, Title: "Camera X1", Price: 120.5, UserID: 7, CreatedAt: 1000, UpdatedAt: 1000}
	items.On("CreateItem", mock.Anything, models.Item{Title: "Camera X1", Price: 120.5, UserID: 7, CreatedAt: 1000, UpdatedAt: 1000}).
		Return(int64(1), nil).Once()
	items.On("ItemByID", mock.Anything, int64(1)).Return(created, nil).Once()

	got, err := s.Create(ctx, owner, models.ItemInput{Title: "Camera X1", Price: 120.5})
	require.NoError(t, err)
	assert.Equal(t, models.ItemView{ID: 1, Title: "Camera X1", Price: 120.5, UserID: 7, CreatedAt: 1000}, got)
	assert.Nil(t, got.Image)

	_, err = s.Create(ctx, owner, models.ItemInput{})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.ValidationFailed, e.Kind)
	assert.Len(t, e.Fields, 3)
	items.AssertExpectations(t)
}

func TestService_Update(t *testing.T) {
	existing := &models.Item{ID: 1, Title: "Camera", Price: 100, UserID: 7}

	tests := []struct {
		name      string
		principal models.Principal
		rawID     string
		in        models.ItemInput
		setup     func(m *ItemRepoMock)
		wantErr   bool
		wantKind  apperr.Kind
		wantPrice float64
	}{
		{
			name:      "owner updates price",
			principal: owner,
			rawID:     "1",
			in:        models.ItemInput{Price: 80.0},
			setup: func(m *ItemRepoMock) {
				m.On("ItemByID", mock.Anything, int64(1)).Return(existing, nil).Once()
				m.On("UpdateItem", mock.Anything, int64(1), models.ItemFields{Price: priceOf(80)}, int64(1000)).Return(nil).Once()
				m.On("ItemByID", mock.Anything, int64(1)).Return(&models.Item{ID: 1, Title: "Camera", Price: 80, UserID: 7}, nil).Once()
			},
			wantPrice: 80,
		},
		{
			name:      "another user is forbidden even with valid payload",
			principal: models.Principal{ID: 8},
			rawID:     "1",
			in:        models.ItemInput{Title: "Stolen"},
			setup: func(m *ItemRepoMock) {
				m.On("ItemByID", mock.Anything, int64(1)).Return(existing, nil).Once()
			},
			wantErr:  true,
			wantKind: apperr.Forbidden,
		},
		{
			name:      "negative price",
			principal: owner,
			rawID:     "1",
			in:        models.ItemInput{Price: -5.0},
			setup: func(m *ItemRepoMock) {
				m.On("ItemByID", mock.Anything, int64(1)).Return(existing, nil).Once()
			},
			wantErr:  true,
			wantKind: apperr.ValidationFailed,
		},
		{
			name:      "empty payload returns current item without write",
			principal: owner,
			rawID:     "1",
			in:        models.ItemInput{},
			setup: func(m *ItemRepoMock) {
				m.On("ItemByID", mock.Anything, int64(1)).Return(existing, nil).Once()
			},
			wantPrice: 100,
		},
		{
			name:      "non numeric id",
			principal: owner,
			rawID:     "abc",
			setup:     func(*ItemRepoMock) {},
			wantErr:   true,
			wantKind:  apperr.NotFound,
		},
		{
			name:      "missing item",
			principal: owner,
			rawID:     "9",
			setup: func(m *ItemRepoMock) {
				m.On("ItemByID", mock.Anything, int64(9)).Return(nil, storage.ErrNotFound).Once()
			},
			wantErr:  true,
			wantKind: apperr.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := new(ItemRepoMock)
			tt.setup(items)
			s, _ := newService(t, items, new(GuardMock))

			got, err := s.Update(context.Background(), tt.principal, tt.rawID, tt.in)
			if tt.wantErr {
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantPrice, got.Price)
			}
			items.AssertExpectations(t)
			if tt.wantErr || tt.in == (models.ItemInput{}) {
				items.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_Remove(t *testing.T) {
	items := new(ItemRepoMock)
	s, files := newService(t, items, new(GuardMock))
	ctx := context.Background()

	img, err := files.Save(ctx, "a.png", strings.NewReader("png"))
	require.NoError(t, err)

	items.On("ItemByID", mock.Anything, int64(1)).Return(&models.Item{ID: 1, UserID: 7, Image: &img.Name}, nil).Twice()
	items.On("DeleteItem", mock.Anything, int64(1)).Return(nil).Once()

	err = s.Remove(ctx, models.Principal{ID: 8}, "1")
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	require.NoError(t, s.Remove(ctx, owner, "1"))
	ok, err := files.Exists(ctx, img.Name)
	require.NoError(t, err)
	assert.False(t, ok)
	items.AssertExpectations(t)
}

func TestService_List(t *testing.T) {
	userID := int64(7)

	tests := []struct {
		name string
		in   models.ItemFilter
		want models.ItemFilter
	}{
		{
			name: "defaults",
			in:   models.ItemFilter{},
			want: models.ItemFilter{OrderBy: "created_at", OrderType: models.OrderDesc},
		},
		{
			name: "unknown sort field and direction",
			in:   models.ItemFilter{OrderBy: "title", OrderType: "sideways"},
			want: models.ItemFilter{OrderBy: "created_at", OrderType: models.OrderAsc},
		},
		{
			name: "explicit",
			in:   models.ItemFilter{Title: "cam", UserID: &userID, OrderBy: "price", OrderType: "asc"},
			want: models.ItemFilter{Title: "cam", UserID: &userID, OrderBy: "price", OrderType: models.OrderAsc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := new(ItemRepoMock)
			items.On("ListItems", mock.Anything, tt.want).Return([]models.Item{{ID: 1, Title: "Camera"}}, nil).Once()
			s, _ := newService(t, items, new(GuardMock))

			got, err := s.List(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Len(t, got, 1)
			items.AssertExpectations(t)
		})
	}
}

func TestService_UploadImage(t *testing.T) {
	guard := new(GuardMock)
	s, _ := newService(t, new(ItemRepoMock), guard)
	ctx := context.Background()
	name := "stored.png"

	guard.On("Attach", mock.Anything, owner, "1", mock.MatchedBy(func(f filestore.File) bool {
		return f.OriginalName == "photo.png" && f.Ext == ".png" && f.Size == 3
	})).Return(&models.Item{ID: 1, UserID: 7, Image: &name}, nil).Once()

	got, err := s.UploadImage(ctx, owner, "1", "photo.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, &name, got.Image)

	guard.On("Attach", mock.Anything, owner, "2", mock.Anything).Return(nil, apperr.NewForbidden()).Once()
	_, err = s.UploadImage(ctx, owner, "2", "photo.png", strings.NewReader("png"))
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	guard.AssertExpectations(t)
}

func TestService_UploadImageOversize(t *testing.T) {
	const maxSize = 64
	dir := t.TempDir()
	files, err := filestore.NewLocal(dir)
	require.NoError(t, err)
	items := new(ItemRepoMock)
	guard := upload.New(newNoopLogger(), files, items, maxSize, []string{".png"})
	s := NewService(items, validation.New(nil), files, guard, newNoopLogger())

	src := &countingReader{r: strings.NewReader(strings.Repeat("x", 100*maxSize))}
	_, err = s.UploadImage(context.Background(), owner, "1", "huge.png", src)

	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, []apperr.FieldError{{Field: "file", Message: "The file 'huge.png' is too big"}}, e.Fields)
	assert.LessOrEqual(t, src.n, int64(maxSize+1))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	items.AssertExpectations(t)
}

func TestService_OpenImage(t *testing.T) {
	s, files := newService(t, new(ItemRepoMock), new(GuardMock))
	ctx := context.Background()

	f, err := files.Save(ctx, "a.png", strings.NewReader("png"))
	require.NoError(t, err)

	rc, err := s.OpenImage(ctx, f.Name)
	require.NoError(t, err)
	_ = rc.Close()

	_, err = s.OpenImage(ctx, "missing.png")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestService_StoreFailure(t *testing.T) {
	items := new(ItemRepoMock)
	s, _ := newService(t, items, new(GuardMock))
	items.On("ListItems", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	_, err := s.List(context.Background(), models.ItemFilter{})
	assert.Equal(t, apperr.Internal, apperr.KindOf(err))
}
