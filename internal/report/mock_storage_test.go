package report_test

import (
	"io"
	"time"

	"grievance/backend/internal/models"
	"grievance/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

var _ storage.Storage = (*MockStorage)(nil)

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) CreateReport(report *models.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockStorage) GetReportByID(id uint) (*models.Report, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockStorage) UpdateReport(report *models.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockStorage) DeleteReport(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) ListReports(filter storage.ReportFilter) ([]models.Report, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockStorage) CreateMedia(media *models.Media) error {
	args := m.Called(media)
	return args.Error(0)
}

func (m *MockStorage) MediaForReport(reportID uint) ([]models.Media, error) {
	args := m.Called(reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Media), args.Error(1)
}

func (m *MockStorage) DeleteMediaForReport(reportID uint) error {
	args := m.Called(reportID)
	return args.Error(0)
}

// The aggregate cache is an optimization the services must work without, so
// the mock behaves like a cold cache instead of requiring expectations.
func (m *MockStorage) CachedAggregate(string) ([]byte, bool)        { return nil, false }
func (m *MockStorage) StoreAggregate(string, []byte, time.Duration) {}
func (m *MockStorage) InvalidateAggregates()                        {}

type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Save(filename string, src io.Reader) (string, string, error) {
	args := m.Called(filename, src)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockMediaStore) Remove(storedName string) error {
	args := m.Called(storedName)
	return args.Error(0)
}
