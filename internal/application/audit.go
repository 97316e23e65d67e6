package application

import (
	"github.com/linskybing/genie-forms/internal/domain/audit"
	"github.com/linskybing/genie-forms/internal/repository"
)

const defaultAuditLimit = 100

type AuditService struct {
	Repos *repository.Repos
}

func NewAuditService(repos *repository.Repos) *AuditService {
	return &AuditService{
		Repos: repos,
	}
}

func (s *AuditService) QueryAuditLogs(params audit.QueryParams) ([]audit.AuditLog, error) {
	if params.Limit <= 0 {
		params.Limit = defaultAuditLimit
	}
	return s.Repos.Audit.GetAuditLogs(params)
}

// CleanupOldLogs deletes rows older than days and returns how many went.
func (s *AuditService) CleanupOldLogs(days int) (int64, error) {
	return s.Repos.Audit.DeleteOldAuditLogs(days)
}
