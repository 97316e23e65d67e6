package repository

import (
	"github.com/linskybing/genie-forms/internal/domain/form"
	"gorm.io/gorm"
)

type SubmissionRepo interface {
	CreateSubmission(s *form.Submission) error
	GetSubmissionByID(id uint) (form.Submission, error)
	GetSubmissionByReference(ref string) (form.Submission, error)
	ListSubmissionsByUser(userID uint) ([]form.Submission, error)
	ListSubmissions(filter form.SubmissionFilter) ([]form.Submission, int64, error)
	UpdateStatus(id uint, status form.SubmissionStatus, notifyErr string) error
	WithTx(tx *gorm.DB) SubmissionRepo
}

type DBSubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) *DBSubmissionRepo {
	return &DBSubmissionRepo{
		db: db,
	}
}

func (r *DBSubmissionRepo) CreateSubmission(s *form.Submission) error {
	return r.db.Create(s).Error
}

func (r *DBSubmissionRepo) GetSubmissionByID(id uint) (form.Submission, error) {
	var s form.Submission
	err := r.db.First(&s, id).Error
	return s, err
}

func (r *DBSubmissionRepo) GetSubmissionByReference(ref string) (form.Submission, error) {
	var s form.Submission
	err := r.db.Where("reference = ?", ref).First(&s).Error
	return s, err
}

func (r *DBSubmissionRepo) ListSubmissionsByUser(userID uint) ([]form.Submission, error) {
	var out []form.Submission
	err := r.db.Where("created_by = ?", userID).Order("submitted_at desc").Find(&out).Error
	return out, err
}

func (r *DBSubmissionRepo) ListSubmissions(filter form.SubmissionFilter) ([]form.Submission, int64, error) {
	filter.Normalize()
	query := r.db.Model(&form.Submission{})
	if filter.FormID != "" {
		query = query.Where("form_id = ?", filter.FormID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []form.Submission
	err := query.Order("submitted_at desc").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&out).Error
	return out, total, err
}

func (r *DBSubmissionRepo) UpdateStatus(id uint, status form.SubmissionStatus, notifyErr string) error {
	return r.db.Model(&form.Submission{}).Where("id = ?", id).Updates(map[string]any{
		"status":             status,
		"notification_error": notifyErr,
	}).Error
}

func (r *DBSubmissionRepo) WithTx(tx *gorm.DB) SubmissionRepo {
	if tx == nil {
		return r
	}
	return &DBSubmissionRepo{
		db: tx,
	}
}
