package domain

// Create payloads are bound and validated by the validation middleware before
// a handler sees them.

type CreateUserRequest struct {
	UserName  string `json:"userName" binding:"required,max=64"`
	FirstName string `json:"firstName" binding:"required,valid_name"`
	LastName  string `json:"lastName" binding:"required,valid_name"`
	Gender    string `json:"gender" binding:"required"`
	Age       int    `json:"age" binding:"required,gt=0"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,strong_password"`
}

func (r CreateUserRequest) User() *User {
	return &User{
		UserName:  r.UserName,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Gender:    r.Gender,
		Age:       r.Age,
		Email:     r.Email,
	}
}

type CreateRecruiterRequest struct {
	CompanyName        string `json:"companyName" binding:"required,valid_name"`
	CompanyDescription string `json:"companyDescription" binding:"required"`
	Address            string `json:"address" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,strong_password"`
}

func (r CreateRecruiterRequest) Recruiter() *Recruiter {
	return &Recruiter{
		CompanyName:        r.CompanyName,
		CompanyDescription: r.CompanyDescription,
		Address:            r.Address,
		Email:              r.Email,
	}
}

type CreateJobRequest struct {
	JobTitle       string  `json:"jobTitle" binding:"required"`
	JobDescription string  `json:"jobDescription" binding:"required"`
	Location       string  `json:"location" binding:"required"`
	Salary         float64 `json:"salary" binding:"required"`
}

func (r CreateJobRequest) Job() *Job {
	return &Job{
		JobTitle:       r.JobTitle,
		JobDescription: r.JobDescription,
		Location:       r.Location,
		Salary:         r.Salary,
	}
}
