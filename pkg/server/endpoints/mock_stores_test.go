package endpoints

import (
	"github.com/stretchr/testify/mock"

	"editoria/pkg/server/store"
)

// MockEditorsStore implements store.EditorsStore for testing using testify/mock
type MockEditorsStore struct {
	mock.Mock
}

func NewMockEditorsStore() *MockEditorsStore {
	return &MockEditorsStore{}
}

func (m *MockEditorsStore) FindEditor(name string) (*store.Editor, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Editor), args.Error(1)
}

func (m *MockEditorsStore) AddEditor(name, callName, passwordDigest string) (*store.Editor, error) {
	args := m.Called(name, callName, passwordDigest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Editor), args.Error(1)
}

func (m *MockEditorsStore) UpdatePassword(name, passwordDigest string) error {
	args := m.Called(name, passwordDigest)
	return args.Error(0)
}

// MockArticlesStore implements store.ArticlesStore for testing using testify/mock
type MockArticlesStore struct {
	mock.Mock
}

func NewMockArticlesStore() *MockArticlesStore {
	return &MockArticlesStore{}
}

func (m *MockArticlesStore) AddArticle(authorID int64, title string, content *string) error {
	args := m.Called(authorID, title, content)
	return args.Error(0)
}

func (m *MockArticlesStore) GetTitles(authorID int64) ([]store.Article, error) {
	args := m.Called(authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Article), args.Error(1)
}

func (m *MockArticlesStore) FindArticle(id int64) (*store.Article, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Article), args.Error(1)
}

func (m *MockArticlesStore) UpdateArticle(id int64, title string, content *string) error {
	args := m.Called(id, title, content)
	return args.Error(0)
}

func (m *MockArticlesStore) DeleteArticle(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
