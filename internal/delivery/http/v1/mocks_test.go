package v1_test

import (
	"context"

	"job-board-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockAuthUC struct {
	mock.Mock
}

func (m *MockAuthUC) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUC) ForgotPassword(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUC) ResetPassword(ctx context.Context, resetToken, newPassword string) (string, error) {
	args := m.Called(ctx, resetToken, newPassword)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUC) UpdatePassword(ctx context.Context, p domain.Principal, current, next string) (string, error) {
	args := m.Called(ctx, p, current, next)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUC) CurrentAccount(ctx context.Context, id string) (domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Account), args.Error(1)
}

type MockUserUC struct {
	mock.Mock
}

func (m *MockUserUC) ListUsers(ctx context.Context, opts domain.ListOptions) ([]*domain.User, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserUC) CreateUser(ctx context.Context, user *domain.User, plainPassword string) (string, error) {
	args := m.Called(ctx, user, plainPassword)
	return args.String(0), args.Error(1)
}

func (m *MockUserUC) GetUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUC) UpdateUser(ctx context.Context, p domain.Principal, id string, update domain.UserUpdate) (*domain.User, error) {
	args := m.Called(ctx, p, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUC) DeleteUser(ctx context.Context, p domain.Principal, id string) (*domain.User, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUC) DeleteUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserUC) EnsureAdmin(ctx context.Context, email, plainPassword string) error {
	return m.Called(ctx, email, plainPassword).Error(0)
}

type MockRecruiterUC struct {
	mock.Mock
}

func (m *MockRecruiterUC) ListRecruiters(ctx context.Context, opts domain.ListOptions) ([]*domain.Recruiter, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Recruiter), args.Error(1)
}

func (m *MockRecruiterUC) CreateRecruiter(ctx context.Context, recruiter *domain.Recruiter, plainPassword string) (string, error) {
	args := m.Called(ctx, recruiter, plainPassword)
	return args.String(0), args.Error(1)
}

func (m *MockRecruiterUC) GetRecruiter(ctx context.Context, id string) (*domain.Recruiter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recruiter), args.Error(1)
}

func (m *MockRecruiterUC) UpdateRecruiter(ctx context.Context, p domain.Principal, id string, update domain.RecruiterUpdate) (*domain.Recruiter, error) {
	args := m.Called(ctx, p, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recruiter), args.Error(1)
}

func (m *MockRecruiterUC) DeleteRecruiter(ctx context.Context, p domain.Principal, id string) (*domain.Recruiter, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recruiter), args.Error(1)
}

func (m *MockRecruiterUC) DeleteRecruiters(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockJobUC struct {
	mock.Mock
}

func (m *MockJobUC) ListJobs(ctx context.Context, opts domain.ListOptions) ([]*domain.Job, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Job), args.Error(1)
}

func (m *MockJobUC) CreateJob(ctx context.Context, p domain.Principal, job *domain.Job) error {
	return m.Called(ctx, p, job).Error(0)
}

func (m *MockJobUC) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobUC) UpdateJob(ctx context.Context, p domain.Principal, id string, update domain.JobUpdate) (*domain.Job, error) {
	args := m.Called(ctx, p, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobUC) DeleteJob(ctx context.Context, p domain.Principal, id string) (*domain.Job, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobUC) DeleteJobs(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobUC) ExportJobs(ctx context.Context) ([]byte, string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
