package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type jobUsecase struct {
	jobRepo domain.JobRepository
}

func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

func (u *jobUsecase) ListJobs(ctx context.Context, opts domain.ListOptions) ([]*domain.Job, error) {
	jobs, err := u.jobRepo.Find(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("error retrieving all jobs: %w", err)
	}
	return jobs, nil
}

// CreateJob stores a job. A recruiter becomes the owner; admins may post unowned jobs.
func (u *jobUsecase) CreateJob(ctx context.Context, p domain.Principal, job *domain.Job) error {
	switch p.Role {
	case domain.RoleRecruiter:
		owner, err := bson.ObjectIDFromHex(p.ID)
		if err != nil {
			return apperror.Unauthorized("Not authorized to access this route")
		}
		job.Recruiter = &owner
	case domain.RoleAdmin:
	default:
		return apperror.Forbidden("Only recruiters or admins can post jobs")
	}

	// Business Validation
	if job.Salary < 0 {
		return apperror.BadRequest("Salary cannot be negative")
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return storeError(err, "error creating job", "")
	}
	return nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "error retrieving job "+id, "No job found with id of "+id)
	}
	return job, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, p domain.Principal, id string, update domain.JobUpdate) (*domain.Job, error) {
	if err := u.authorizeOwner(ctx, p, id); err != nil {
		return nil, err
	}
	if update.Salary != nil && *update.Salary < 0 {
		return nil, apperror.BadRequest("Salary cannot be negative")
	}

	job, err := u.jobRepo.Update(ctx, id, update)
	if err != nil {
		return nil, storeError(err, "error updating job "+id, "No job found with id of "+id)
	}
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, p domain.Principal, id string) (*domain.Job, error) {
	if err := u.authorizeOwner(ctx, p, id); err != nil {
		return nil, err
	}

	job, err := u.jobRepo.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err, "error deleting job "+id, "No job found with id of "+id)
	}
	return job, nil
}

func (u *jobUsecase) DeleteJobs(ctx context.Context) (int64, error) {
	n, err := u.jobRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("error deleting all jobs: %w", err)
	}
	return n, nil
}

// authorizeOwner lets admins through and otherwise requires the caller to be
// the recruiter that posted the job.
func (u *jobUsecase) authorizeOwner(ctx context.Context, p domain.Principal, id string) error {
	if p.IsAdmin() {
		return nil
	}
	job, err := u.jobRepo.FindByID(ctx, id)
	if err != nil {
		return storeError(err, "error retrieving job "+id, "No job found with id of "+id)
	}
	if p.Kind != domain.KindRecruiter || !p.CanModify(job.OwnerID()) {
		return apperror.Forbidden("Not allowed to modify this job")
	}
	return nil
}

var exportColumns = []string{"ID", "Job Title", "Job Description", "Location", "Salary", "Recruiter", "Created At"}

func (u *jobUsecase) ExportJobs(ctx context.Context) ([]byte, string, error) {
	jobs, err := u.jobRepo.Find(ctx, domain.ListOptions{SortField: "createdAt", SortOrder: domain.SortDesc})
	if err != nil {
		return nil, "", fmt.Errorf("error retrieving jobs for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Jobs"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, "", fmt.Errorf("failed to name sheet: %w", err)
	}

	// Header row
	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	// Data rows
	for rowIdx, job := range jobs {
		values := []interface{}{
			job.ID.Hex(),
			job.JobTitle,
			job.JobDescription,
			job.Location,
			job.Salary,
			job.OwnerID(),
			job.CreatedAt.Format(time.RFC3339),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 24)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := fmt.Sprintf("jobs_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}
