package application

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/genie-forms/internal/domain/audit"
	"github.com/linskybing/genie-forms/internal/repository"
	"github.com/linskybing/genie-forms/internal/repository/mock"
	"github.com/stretchr/testify/assert"
)

func setupAuditServiceMocks(t *testing.T) (*AuditService, *mock.MockAuditRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockAudit := mock.NewMockAuditRepo(ctrl)
	return NewAuditService(&repository.Repos{Audit: mockAudit}), mockAudit
}

func TestQueryAuditLogs_DefaultLimit(t *testing.T) {
	svc, mockAudit := setupAuditServiceMocks(t)

	action := audit.ActionSubmit
	mockAudit.EXPECT().GetAuditLogs(audit.QueryParams{Action: &action, Limit: defaultAuditLimit}).
		Return([]audit.AuditLog{{ID: 1, Action: action}}, nil)

	logs, err := svc.QueryAuditLogs(audit.QueryParams{Action: &action})
	assert.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestCleanupOldLogs(t *testing.T) {
	svc, mockAudit := setupAuditServiceMocks(t)
	mockAudit.EXPECT().DeleteOldAuditLogs(30).Return(int64(4), nil)

	n, err := svc.CleanupOldLogs(30)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
