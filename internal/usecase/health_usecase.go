package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-board-backend/internal/domain"
)

const checkTimeout = 2 * time.Second

type healthUsecase struct {
	required map[string]domain.HealthCheck
	optional map[string]domain.HealthCheck
}

// NewHealthUsecase checks required services (the database) and optional ones
// (the rate limit cache). Only required failures degrade the service.
func NewHealthUsecase(required, optional map[string]domain.HealthCheck) domain.HealthUsecase {
	return &healthUsecase{required: required, optional: optional}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, error) {
	status := map[string]string{"status": "ok"}

	var errs []error
	for name, check := range u.required {
		if err := runCheck(ctx, check); err != nil {
			status[name] = "unavailable"
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		status[name] = "ok"
	}
	for name, check := range u.optional {
		if err := runCheck(ctx, check); err != nil {
			status[name] = "unavailable"
			continue
		}
		status[name] = "ok"
	}

	if len(errs) > 0 {
		status["status"] = "degraded"
		return status, errors.Join(errs...)
	}
	return status, nil
}

func runCheck(ctx context.Context, check domain.HealthCheck) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return check(ctx)
}
