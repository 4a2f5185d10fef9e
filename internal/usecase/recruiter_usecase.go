package usecase

import (
	"context"
	"fmt"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

type recruiterUsecase struct {
	recruiterRepo domain.RecruiterRepository
	tokens        domain.TokenIssuer
}

func NewRecruiterUsecase(recruiterRepo domain.RecruiterRepository, tokens domain.TokenIssuer) domain.RecruiterUsecase {
	return &recruiterUsecase{
		recruiterRepo: recruiterRepo,
		tokens:        tokens,
	}
}

func (u *recruiterUsecase) ListRecruiters(ctx context.Context, opts domain.ListOptions) ([]*domain.Recruiter, error) {
	recruiters, err := u.recruiterRepo.Find(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("error retrieving all recruiters: %w", err)
	}
	return recruiters, nil
}

func (u *recruiterUsecase) CreateRecruiter(ctx context.Context, recruiter *domain.Recruiter, plainPassword string) (string, error) {
	recruiter.Email = normalizeEmail(recruiter.Email)
	if err := recruiter.SetPassword(plainPassword); err != nil {
		return "", fmt.Errorf("error creating recruiter: %w", err)
	}

	if err := u.recruiterRepo.Create(ctx, recruiter); err != nil {
		return "", storeError(err, "error creating recruiter", "")
	}

	return u.tokens.Issue(recruiter.AccountID(), domain.KindRecruiter)
}

func (u *recruiterUsecase) GetRecruiter(ctx context.Context, id string) (*domain.Recruiter, error) {
	recruiter, err := u.recruiterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "error retrieving recruiter "+id, "No recruiter found with id of "+id)
	}
	return recruiter, nil
}

func (u *recruiterUsecase) UpdateRecruiter(ctx context.Context, p domain.Principal, id string, update domain.RecruiterUpdate) (*domain.Recruiter, error) {
	if !p.CanModify(id) {
		return nil, apperror.Forbidden("Not allowed to update this recruiter")
	}
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		update.Email = &email
	}

	recruiter, err := u.recruiterRepo.Update(ctx, id, update)
	if err != nil {
		return nil, storeError(err, "error updating recruiter "+id, "No recruiter found with id of "+id)
	}
	return recruiter, nil
}

func (u *recruiterUsecase) DeleteRecruiter(ctx context.Context, p domain.Principal, id string) (*domain.Recruiter, error) {
	if !p.CanModify(id) {
		return nil, apperror.Forbidden("Not allowed to delete this recruiter")
	}

	recruiter, err := u.recruiterRepo.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err, "error deleting recruiter "+id, "No recruiter found with id of "+id)
	}
	return recruiter, nil
}

func (u *recruiterUsecase) DeleteRecruiters(ctx context.Context) (int64, error) {
	n, err := u.recruiterRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("error deleting all recruiters: %w", err)
	}
	return n, nil
}
