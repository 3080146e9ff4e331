package license

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tsvs/backend/internal/domain/license"
	"github.com/tsvs/backend/internal/domain/shared"
	"github.com/tsvs/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

type MockLookupRepository struct {
	mock.Mock
	kind license.LookupKind
}

func (m *MockLookupRepository) Kind() license.LookupKind { return m.kind }

func (m *MockLookupRepository) Create(ctx context.Context, l *license.Lookup) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLookupRepository) Update(ctx context.Context, l *license.Lookup) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLookupRepository) FindByID(ctx context.Context, id uuid.UUID) (*license.Lookup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*license.Lookup), args.Error(1)
}

func (m *MockLookupRepository) FindAll(ctx context.Context) ([]*license.Lookup, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*license.Lookup), args.Error(1)
}

func (m *MockLookupRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

type MockLicenseRepository struct {
	mock.Mock
}

func (m *MockLicenseRepository) Create(ctx context.Context, l *license.License) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLicenseRepository) Update(ctx context.Context, l *license.License) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLicenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*license.License, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*license.License), args.Error(1)
}

func (m *MockLicenseRepository) FindAll(ctx context.Context, filter license.Filter) ([]*license.License, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*license.License), args.Get(1).(int64), args.Error(2)
}

type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) Create(ctx context.Context, a *license.Attachment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*license.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*license.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindByLicenseID(ctx context.Context, licenseID uuid.UUID) ([]*license.Attachment, error) {
	args := m.Called(ctx, licenseID)
	return args.Get(0).([]*license.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) ExistsByFileName(ctx context.Context, fileName string) (bool, error) {
	args := m.Called(ctx, fileName)
	return args.Bool(0), args.Error(1)
}

// memoryStore keeps objects in a map
type memoryStore struct {
	objects map[string][]byte
	fail    bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (s *memoryStore) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if s.fail {
		return errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *memoryStore) URL(_ context.Context, key string) (string, error) {
	return "/static/" + key, nil
}

func newLicense(t *testing.T) *license.License {
	t.Helper()
	l, err := license.NewLicense(license.Details{
		NameEntity:     "School No. 5",
		FullName:       "Karimov A.",
		ContractNumber: "CN-001",
	}, uuid.New(), nil)
	require.NoError(t, err)
	return l
}

func validItemInput(regionID uuid.UUID) ItemInput {
	return ItemInput{
		DetailsDTO: DetailsDTO{
			NameEntity:     "School No. 7",
			FullName:       "Rakhimova D.",
			ContractNumber: "CN-077",
			FormsEducation: "full-time",
		},
		RegionID: regionID,
	}
}

func TestLookupService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and invalidates the cached list", func(t *testing.T) {
		repo := &MockLookupRepository{kind: license.LookupRegion}
		listCache := cache.NewLRUListCache(16, time.Minute)
		svc := NewLookupService(repo, listCache, time.Minute, zap.NewNop())
		repo.On("FindAll", ctx).Return([]*license.Lookup{}, nil).Once()
		repo.On("ExistsByName", ctx, "Tashkent", uuid.Nil).Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*license.Lookup")).Return(nil)

		_, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, listCache.Len())

		dto, err := svc.Create(ctx, LookupInput{Name: " Tashkent "})

		require.NoError(t, err)
		assert.Equal(t, "Tashkent", dto.Name)
		assert.True(t, dto.IsActive)
		assert.Equal(t, 0, listCache.Len())
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := &MockLookupRepository{kind: license.LookupQuantity}
		svc := NewLookupService(repo, nil, 0, zap.NewNop())
		repo.On("ExistsByName", ctx, "1-5", uuid.Nil).Return(true, nil)

		_, err := svc.Create(ctx, LookupInput{Name: "1-5"})

		assert.Equal(t, "NAME_EXISTS", shared.CodeOf(err))
		assert.Equal(t, "Quantity with this name already exists", err.Error())
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLookupService_List_ServesFromCache(t *testing.T) {
	ctx := context.Background()
	repo := &MockLookupRepository{kind: license.LookupRegion}
	svc := NewLookupService(repo, cache.NewLRUListCache(16, time.Minute), time.Minute, zap.NewNop())
	row, err := license.NewLookup(license.LookupRegion, "Samarkand")
	require.NoError(t, err)
	repo.On("FindAll", ctx).Return([]*license.Lookup{row}, nil).Once()

	first, err := svc.List(ctx)
	require.NoError(t, err)
	second, err := svc.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "FindAll", 1)
}

func TestLookupService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := &MockLookupRepository{kind: license.LookupRegion}
	svc := NewLookupService(repo, nil, 0, zap.NewNop())
	row, err := license.NewLookup(license.LookupRegion, "Bukhara")
	require.NoError(t, err)
	repo.On("FindByID", ctx, row.ID).Return(row, nil)
	repo.On("ExistsByName", ctx, "Navoi", row.ID).Return(false, nil)
	repo.On("Update", ctx, row).Return(nil)

	updated, err := svc.Update(ctx, row.ID, LookupInput{Name: "Navoi"})
	require.NoError(t, err)
	assert.Equal(t, "Navoi", updated.Name)
	assert.True(t, updated.IsActive)

	deleted, err := svc.Delete(ctx, row.ID)
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)

	missing := uuid.New()
	repo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)
	_, err = svc.GetByID(ctx, missing)
	assert.Equal(t, "Region not found", err.Error())
}

func TestItemService_Create(t *testing.T) {
	ctx := context.Background()

	newService := func() (*ItemService, *MockLicenseRepository, *MockLookupRepository, *MockLookupRepository) {
		licenses := new(MockLicenseRepository)
		regions := &MockLookupRepository{kind: license.LookupRegion}
		quantities := &MockLookupRepository{kind: license.LookupQuantity}
		return NewItemService(licenses, regions, quantities, zap.NewNop()), licenses, regions, quantities
	}

	t.Run("creates with region and quantity", func(t *testing.T) {
		svc, licenses, regions, quantities := newService()
		regionID, quantityID := uuid.New(), uuid.New()
		regions.On("FindByID", ctx, regionID).Return(&license.Lookup{}, nil)
		quantities.On("FindByID", ctx, quantityID).Return(&license.Lookup{}, nil)
		licenses.On("Create", ctx, mock.AnythingOfType("*license.License")).Return(nil)

		input := validItemInput(regionID)
		input.QuantityID = &quantityID
		dto, err := svc.Create(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "CN-077", dto.ContractNumber)
		assert.Equal(t, regionID, dto.RegionID)
		assert.Equal(t, &quantityID, dto.QuantityID)
		assert.True(t, dto.IsActive)
	})

	t.Run("unknown region", func(t *testing.T) {
		svc, licenses, regions, _ := newService()
		regionID := uuid.New()
		regions.On("FindByID", ctx, regionID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, validItemInput(regionID))

		assert.Equal(t, "Region not found", err.Error())
		licenses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown quantity", func(t *testing.T) {
		svc, _, regions, quantities := newService()
		regionID, quantityID := uuid.New(), uuid.New()
		regions.On("FindByID", ctx, regionID).Return(&license.Lookup{}, nil)
		quantities.On("FindByID", ctx, quantityID).Return(nil, shared.ErrNotFound)

		input := validItemInput(regionID)
		input.QuantityID = &quantityID
		_, err := svc.Create(ctx, input)

		assert.Equal(t, "Quantity not found", err.Error())
	})

	t.Run("missing contract number", func(t *testing.T) {
		svc, _, regions, _ := newService()
		regionID := uuid.New()
		regions.On("FindByID", ctx, regionID).Return(&license.Lookup{}, nil)

		input := validItemInput(regionID)
		input.ContractNumber = "  "
		_, err := svc.Create(ctx, input)

		assert.Error(t, err)
		assert.NotEqual(t, "INTERNAL_ERROR", shared.CodeOf(err))
	})
}

func TestItemService_List(t *testing.T) {
	ctx := context.Background()
	licenses := new(MockLicenseRepository)
	svc := NewItemService(licenses, &MockLookupRepository{}, &MockLookupRepository{}, zap.NewNop())
	active := true
	regionID := uuid.New()
	item := newLicense(t)
	licenses.On("FindAll", ctx, license.Filter{
		RegionID: &regionID,
		Active:   &active,
		Query:    "school",
		Offset:   10,
		Limit:    10,
	}).Return([]*license.License{item}, int64(21), nil)

	page, err := svc.List(ctx, ListItemsInput{
		Filter:   shared.Filter{Page: 2, PageSize: 10, Search: "school"},
		RegionID: &regionID,
		Active:   &active,
	})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, item.ID, page.Items[0].ID)
	assert.Equal(t, int64(21), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
}

func TestItemService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	licenses := new(MockLicenseRepository)
	regions := &MockLookupRepository{kind: license.LookupRegion}
	svc := NewItemService(licenses, regions, &MockLookupRepository{}, zap.NewNop())
	item := newLicense(t)
	regionID := uuid.New()
	licenses.On("FindByID", ctx, item.ID).Return(item, nil)
	licenses.On("Update", ctx, item).Return(nil)
	regions.On("FindByID", ctx, regionID).Return(&license.Lookup{}, nil)

	updated, err := svc.Update(ctx, item.ID, validItemInput(regionID))
	require.NoError(t, err)
	assert.Equal(t, "School No. 7", updated.NameEntity)
	assert.Equal(t, regionID, updated.RegionID)

	deleted, err := svc.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)

	missing := uuid.New()
	licenses.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)
	_, err = svc.GetByID(ctx, missing)
	assert.Equal(t, "Item not found", err.Error())
}

func TestAttachmentService_Upload(t *testing.T) {
	ctx := context.Background()

	newService := func() (*AttachmentService, *MockAttachmentRepository, *MockLicenseRepository, *memoryStore) {
		attachments := new(MockAttachmentRepository)
		licenses := new(MockLicenseRepository)
		store := newMemoryStore()
		return NewAttachmentService(attachments, licenses, store, zap.NewNop()), attachments, licenses, store
	}

	t.Run("stores the file and the row", func(t *testing.T) {
		svc, attachments, licenses, store := newService()
		item := newLicense(t)
		licenses.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		attachments.On("ExistsByFileName", mock.Anything, "order.pdf").Return(false, nil)
		attachments.On("Create", mock.Anything, mock.AnythingOfType("*license.Attachment")).Return(nil)

		dto, err := svc.Upload(ctx, item.ID, UploadFile{
			Name: "scans/order.pdf", ContentType: "application/pdf", Size: 4, Body: strings.NewReader("%PDF"),
		})

		require.NoError(t, err)
		assert.Equal(t, "order.pdf", dto.FileName)
		assert.Equal(t, "/static/licenses/"+item.ID.String()+"/order.pdf", dto.URL)
		assert.Equal(t, []byte("%PDF"), store.objects["licenses/"+item.ID.String()+"/order.pdf"])
	})

	t.Run("duplicate file name", func(t *testing.T) {
		svc, attachments, licenses, store := newService()
		item := newLicense(t)
		licenses.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		attachments.On("ExistsByFileName", mock.Anything, "order.pdf").Return(true, nil)

		_, err := svc.Upload(ctx, item.ID, UploadFile{Name: "order.pdf", Size: 1, Body: strings.NewReader("x")})

		assert.Equal(t, "FILE_EXISTS", shared.CodeOf(err))
		assert.Empty(t, store.objects)
	})

	t.Run("unknown license", func(t *testing.T) {
		svc, _, licenses, _ := newService()
		id := uuid.New()
		licenses.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Upload(ctx, id, UploadFile{Name: "a.pdf", Size: 1, Body: strings.NewReader("x")})

		assert.Equal(t, "Item not found", err.Error())
	})

	t.Run("storage failure releases the file name", func(t *testing.T) {
		svc, attachments, licenses, store := newService()
		store.fail = true
		item := newLicense(t)
		licenses.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		attachments.On("ExistsByFileName", mock.Anything, "a.pdf").Return(false, nil)

		var created *license.Attachment
		attachments.On("Create", mock.Anything, mock.AnythingOfType("*license.Attachment")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*license.Attachment) }).
			Return(nil)
		attachments.On("Delete", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)

		_, err := svc.Upload(ctx, item.ID, UploadFile{Name: "a.pdf", Size: 1, Body: strings.NewReader("x")})

		assert.Equal(t, "UPLOAD_FAILED", shared.CodeOf(err))
		require.NotNil(t, created)
		attachments.AssertCalled(t, "Delete", mock.Anything, created.ID)
	})

	t.Run("losing a name race keeps the winner's object", func(t *testing.T) {
		svc, attachments, licenses, store := newService()
		item := newLicense(t)
		key := "licenses/" + item.ID.String() + "/a.pdf"
		store.objects[key] = []byte("first")
		licenses.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		// The other upload commits its row between the name check and the insert.
		attachments.On("ExistsByFileName", mock.Anything, "a.pdf").Return(false, nil)
		attachments.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := svc.Upload(ctx, item.ID, UploadFile{Name: "a.pdf", Size: 6, Body: strings.NewReader("second")})

		assert.Equal(t, "FILE_EXISTS", shared.CodeOf(err))
		assert.Equal(t, []byte("first"), store.objects[key])
		attachments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestAttachmentService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	attachments := new(MockAttachmentRepository)
	licenses := new(MockLicenseRepository)
	store := newMemoryStore()
	svc := NewAttachmentService(attachments, licenses, store, zap.NewNop())

	item := newLicense(t)
	a, err := license.NewAttachment(item.ID, "act.docx", "", 3)
	require.NoError(t, err)
	store.objects[a.StorageKey] = []byte("doc")
	licenses.On("FindByID", ctx, item.ID).Return(item, nil)
	attachments.On("FindByLicenseID", ctx, item.ID).Return([]*license.Attachment{a}, nil)
	attachments.On("FindByID", ctx, a.ID).Return(a, nil)
	attachments.On("Delete", ctx, a.ID).Return(nil)

	files, err := svc.List(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "application/octet-stream", files[0].ContentType)
	assert.Equal(t, "/static/"+a.StorageKey, files[0].URL)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.Empty(t, store.objects)

	missing := uuid.New()
	attachments.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)
	assert.Equal(t, "File not found", svc.Delete(ctx, missing).Error())
}
