package dto

// SeedResult summarizes a demo data run.
type SeedResult struct {
	Success             bool              `json:"success"`
	Message             string            `json:"message"`
	RecruitersCreated   int               `json:"recruitersCreated"`
	JobsCreated         int               `json:"jobsCreated"`
	ApplicationsCreated int               `json:"applicationsCreated"`
	TestCredentials     map[string]string `json:"testCredentials"`
}
