package repositories

import (
	"github.com/vantora-labs/vantora/backend/internal/models"
	"gorm.io/gorm"
)

// ReportRepository defines the interface for moderation report operations
type ReportRepository interface {
	CreateReport(report *models.Report) error
	GetReports() ([]models.Report, error)
	GetReportByID(id uint) (*models.Report, error)
	UpdateReport(report *models.Report) error
	CountReports() (int64, error)
}

type postgresReportRepository struct {
	db *gorm.DB
}

// NewPostgresReportRepository creates a ReportRepository backed by PostgreSQL
func NewPostgresReportRepository(db *gorm.DB) ReportRepository {
	return &postgresReportRepository{db: db}
}

func (r *postgresReportRepository) CreateReport(report *models.Report) error {
	report.Status = models.ReportStatusPending
	return r.db.Create(report).Error
}

func (r *postgresReportRepository) GetReports() ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *postgresReportRepository) GetReportByID(id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *postgresReportRepository) UpdateReport(report *models.Report) error {
	return r.db.Save(report).Error
}

func (r *postgresReportRepository) CountReports() (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).Count(&count).Error
	return count, err
}
