package services_test

import (
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/repos"
)

// testFixture bundles the repos a service test needs for verification.
type testFixture struct {
	tx          *gorm.DB
	reports     repos.ReportRepo
	assessments repos.AssessmentRepo
	scores      repos.RiskScoreRepo
	tasks       repos.DailyTaskRepo
	insights    repos.InsightRepo
}
