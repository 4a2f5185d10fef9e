package usecase_test

import (
	"context"
	"time"

	"job-board-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) FindAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Account), args.Error(1)
}

func (m *MockAccountRepo) FindAccountByID(ctx context.Context, id string) (domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Account), args.Error(1)
}

func (m *MockAccountRepo) FindAccountByResetToken(ctx context.Context, digest string, now time.Time) (domain.Account, error) {
	args := m.Called(ctx, digest, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Account), args.Error(1)
}

func (m *MockAccountRepo) SaveCredentials(ctx context.Context, id string, creds domain.Credentials) error {
	return m.Called(ctx, id, creds).Error(0)
}

type MockUserRepo struct {
	MockAccountRepo
}

func (m *MockUserRepo) Find(ctx context.Context, opts domain.ListOptions) ([]*domain.User, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Delete(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockRecruiterRepo struct {
	MockAccountRepo
}

func (m *MockRecruiterRepo) Find(ctx context.Context, opts domain.ListOptions) ([]*domain.Recruiter, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Recruiter), args.Error(1)
}

func (m *MockRecruiterRepo) Create(ctx context.Context, recruiter *domain.Recruiter) error {
	return m.Called(ctx, recruiter).Error(0)
}

func (m *MockRecruiterRepo) FindByID(ctx context.Context, id string) (*domain.Recruiter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recruiter), args.Error(1)
}

func (m *MockRecruiterRepo) Update(ctx context.Context, id string, update domain.RecruiterUpdate) (*domain.Recruiter, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recruiter), args.Error(1)
}

func (m *MockRecruiterRepo) Delete(ctx context.Context, id string) (*domain.Recruiter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recruiter), args.Error(1)
}

func (m *MockRecruiterRepo) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Find(ctx context.Context, opts domain.ListOptions) ([]*domain.Job, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Update(ctx context.Context, id string, update domain.JobUpdate) (*domain.Job, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Delete(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock collaborators

type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Issue(id string, kind domain.AccountKind) (string, error) {
	args := m.Called(id, kind)
	return args.String(0), args.Error(1)
}

type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) IsBlocked(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuard) RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, error) {
	args := m.Called(ctx, email, ip, userAgent, requestID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuard) ClearAttempts(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) IsConfigured() bool {
	return m.Called().Bool(0)
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	return m.Called(ctx, to, token).Error(0)
}
