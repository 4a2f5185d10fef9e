package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"job-board-backend/internal/domain"
	"job-board-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestCreateJob(t *testing.T) {
	ctx := context.Background()

	t.Run("Should set recruiter as owner", func(t *testing.T) {
		recruiterID := bson.NewObjectID()
		repo := new(MockJobRepo)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Job")).Return(nil).Run(func(args mock.Arguments) {
			j := args.Get(1).(*domain.Job)
			require.NotNil(t, j.Recruiter)
			assert.Equal(t, recruiterID, *j.Recruiter)
			j.ID = bson.NewObjectID()
		})

		uc := usecase.NewJobUsecase(repo)
		job := &domain.Job{JobTitle: "Go Dev", JobDescription: "APIs", Location: "Remote", Salary: 90000}
		err := uc.CreateJob(ctx, domain.Principal{ID: recruiterID.Hex(), Kind: domain.KindRecruiter, Role: domain.RoleRecruiter}, job)

		require.NoError(t, err)
		assert.False(t, job.ID.IsZero())
	})

	t.Run("Should forbid plain users", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo)
		err := uc.CreateJob(ctx, domain.Principal{ID: bson.NewObjectID().Hex(), Kind: domain.KindUser, Role: domain.RoleUser}, &domain.Job{})

		assertAppError(t, err, http.StatusForbidden, "Only recruiters or admins can post jobs")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject negative salary", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo))
		err := uc.CreateJob(ctx, domain.Principal{Role: domain.RoleAdmin}, &domain.Job{Salary: -1})
		assertAppError(t, err, http.StatusBadRequest, "")
	})
}

func TestUpdateJobOwnership(t *testing.T) {
	ctx := context.Background()
	owner := bson.NewObjectID()
	jobID := bson.NewObjectID()
	job := &domain.Job{ID: jobID, JobTitle: "Go Dev", Recruiter: &owner}
	title := "Senior Go Dev"
	update := domain.JobUpdate{JobTitle: &title}

	t.Run("Should let the owner update", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("FindByID", ctx, jobID.Hex()).Return(job, nil)
		repo.On("Update", ctx, jobID.Hex(), update).Return(&domain.Job{ID: jobID, JobTitle: title}, nil)

		uc := usecase.NewJobUsecase(repo)
		got, err := uc.UpdateJob(ctx, domain.Principal{ID: owner.Hex(), Kind: domain.KindRecruiter, Role: domain.RoleRecruiter}, jobID.Hex(), update)

		require.NoError(t, err)
		assert.Equal(t, title, got.JobTitle)
	})

	t.Run("Should forbid another recruiter", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("FindByID", ctx, jobID.Hex()).Return(job, nil)

		uc := usecase.NewJobUsecase(repo)
		_, err := uc.UpdateJob(ctx, domain.Principal{ID: bson.NewObjectID().Hex(), Kind: domain.KindRecruiter, Role: domain.RoleRecruiter}, jobID.Hex(), update)

		assertAppError(t, err, http.StatusForbidden, "")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should forbid a user whose id collides with the owner", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("FindByID", ctx, jobID.Hex()).Return(job, nil)

		uc := usecase.NewJobUsecase(repo)
		_, err := uc.DeleteJob(ctx, domain.Principal{ID: owner.Hex(), Kind: domain.KindUser, Role: domain.RoleUser}, jobID.Hex())
		assertAppError(t, err, http.StatusForbidden, "")
	})

	t.Run("Should map missing job to 404", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("Delete", ctx, jobID.Hex()).Return(nil, domain.ErrNotFound)

		uc := usecase.NewJobUsecase(repo)
		_, err := uc.DeleteJob(ctx, domain.Principal{Role: domain.RoleAdmin}, jobID.Hex())
		assertAppError(t, err, http.StatusNotFound, "No job found with id of "+jobID.Hex())
	})

	t.Run("Should map malformed id to 400", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("FindByID", ctx, "xyz").Return(nil, domain.ErrInvalidID)

		uc := usecase.NewJobUsecase(repo)
		_, err := uc.GetJob(ctx, "xyz")
		assertAppError(t, err, http.StatusBadRequest, "Invalid ID format")
	})
}

func TestListAndDeleteJobs(t *testing.T) {
	ctx := context.Background()
	opts := domain.ListOptions{Fields: []string{"jobTitle"}, Limit: 2}

	t.Run("Should wrap store failures", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("Find", ctx, opts).Return(nil, errors.New("connection reset"))

		_, err := usecase.NewJobUsecase(repo).ListJobs(ctx, opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error retrieving all jobs")
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("Should delete every job", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("DeleteAll", ctx).Return(int64(3), nil)

		n, err := usecase.NewJobUsecase(repo).DeleteJobs(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})
}

func TestExportJobs(t *testing.T) {
	ctx := context.Background()
	repo := new(MockJobRepo)
	repo.On("Find", ctx, mock.AnythingOfType("domain.ListOptions")).Return([]*domain.Job{
		{ID: bson.NewObjectID(), JobTitle: "Go Dev", Location: "Remote", Salary: 1000},
	}, nil)

	data, filename, err := usecase.NewJobUsecase(repo).ExportJobs(ctx)
	require.NoError(t, err)
	assert.Contains(t, filename, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Jobs", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Go Dev", title)
	header, _ := f.GetCellValue("Jobs", "A1")
	assert.Equal(t, "ID", header)
}

func TestUserUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("Should hash password and issue token on create", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.Equal(t, "jane@example.com", u.Email)
			assert.NotEqual(t, "Passw0rd!", u.Password)
			assert.True(t, u.MatchPassword("Passw0rd!"))
			u.ID = bson.NewObjectID()
		})
		tokens := new(MockTokens)
		tokens.On("Issue", mock.AnythingOfType("string"), domain.KindUser).Return("signed.jwt", nil)

		user := &domain.User{UserName: "jane", Email: "Jane@Example.com"}
		token, err := usecase.NewUserUsecase(repo, tokens).CreateUser(ctx, user, "Passw0rd!")

		require.NoError(t, err)
		assert.Equal(t, "signed.jwt", token)
	})

	t.Run("Should forbid updating someone else", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo), new(MockTokens))
		p := domain.Principal{ID: bson.NewObjectID().Hex(), Kind: domain.KindUser, Role: domain.RoleUser}
		_, err := uc.UpdateUser(ctx, p, bson.NewObjectID().Hex(), domain.UserUpdate{})
		assertAppError(t, err, http.StatusForbidden, "")
	})

	t.Run("Should forbid self promotion", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo), new(MockTokens))
		id := bson.NewObjectID().Hex()
		admin := true
		_, err := uc.UpdateUser(ctx, domain.Principal{ID: id, Kind: domain.KindUser, Role: domain.RoleUser}, id, domain.UserUpdate{Admin: &admin})
		assertAppError(t, err, http.StatusForbidden, "Only admins can change the admin flag")
	})

	t.Run("Should create bootstrap admin when missing", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindAccountByEmail", ctx, "root@example.com").Return(nil, domain.ErrNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Admin && u.Email == "root@example.com" && u.MatchPassword("R00t!pass")
		})).Return(nil)

		err := usecase.NewUserUsecase(repo, new(MockTokens)).EnsureAdmin(ctx, "Root@example.com", "R00t!pass")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should promote existing non-admin", func(t *testing.T) {
		existing := &domain.User{ID: bson.NewObjectID(), Email: "root@example.com"}
		repo := new(MockUserRepo)
		repo.On("FindAccountByEmail", ctx, "root@example.com").Return(existing, nil)
		admin := true
		repo.On("Update", ctx, existing.ID.Hex(), domain.UserUpdate{Admin: &admin}).Return(existing, nil)

		err := usecase.NewUserUsecase(repo, new(MockTokens)).EnsureAdmin(ctx, "root@example.com", "ignored")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestRecruiterUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("Should issue recruiter token on create", func(t *testing.T) {
		repo := new(MockRecruiterRepo)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Recruiter")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Recruiter).ID = bson.NewObjectID()
		})
		tokens := new(MockTokens)
		tokens.On("Issue", mock.AnythingOfType("string"), domain.KindRecruiter).Return("signed.jwt", nil)

		token, err := usecase.NewRecruiterUsecase(repo, tokens).CreateRecruiter(ctx, &domain.Recruiter{CompanyName: "Acme", Email: "hr@acme.io"}, "Passw0rd!")
		require.NoError(t, err)
		assert.Equal(t, "signed.jwt", token)
	})

	t.Run("Should let admin delete any recruiter", func(t *testing.T) {
		id := bson.NewObjectID()
		repo := new(MockRecruiterRepo)
		repo.On("Delete", ctx, id.Hex()).Return(&domain.Recruiter{ID: id}, nil)

		got, err := usecase.NewRecruiterUsecase(repo, new(MockTokens)).DeleteRecruiter(ctx, domain.Principal{Role: domain.RoleAdmin}, id.Hex())
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})
}
