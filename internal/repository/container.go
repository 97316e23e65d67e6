package repository

import (
	"github.com/linskybing/genie-forms/internal/domain/audit"
	"github.com/linskybing/genie-forms/internal/domain/form"
	"github.com/linskybing/genie-forms/internal/domain/user"
	"gorm.io/gorm"
)

type Repos struct {
	User       UserRepo
	Audit      AuditRepo
	Submission SubmissionRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		User:       NewUserRepo(db),
		Audit:      NewAuditRepo(db),
		Submission: NewSubmissionRepo(db),
		db:         db,
	}
}

// Migrate creates or updates the tables of every repository.
func (r *Repos) Migrate() error {
	return r.db.AutoMigrate(&user.User{}, &audit.AuditLog{}, &form.Submission{})
}

func (r *Repos) Begin() *gorm.DB {
	return r.db.Begin()
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		User:       r.User.WithTx(tx),
		Audit:      r.Audit.WithTx(tx),
		Submission: r.Submission.WithTx(tx),
		db:         tx,
	}
}

// ExecTx runs fn inside a transaction. Without a database (unit tests with
// mocked repos) fn runs directly against r.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}
