package utils

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/genie-forms/internal/domain/audit"
	"github.com/linskybing/genie-forms/internal/repository"
	"github.com/linskybing/genie-forms/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// LogAuditWithConsole records an audit entry in the background. Request data
// is read before the goroutine starts because the gin context is reused.
var LogAuditWithConsole = func(c *gin.Context, action, resourceType, resourceID string, oldData, newData interface{}, msg string, repos repository.AuditRepo) {
	var userID *uint
	if uid, err := GetUserIDFromContext(c); err == nil {
		userID = &uid
	}
	ip := c.ClientIP()
	ua := c.GetHeader("User-Agent")

	go func() {
		if err := LogAudit(userID, ip, ua, action, resourceType, resourceID, oldData, newData, msg, repos); err != nil {
			logger.L().Warn("audit log write failed", zap.String("action", action), zap.Error(err))
		}
	}()
}

var LogAudit = func(
	userID *uint,
	ip string,
	ua string,
	action string,
	resourceType string,
	resourceID string,
	before any,
	after any,
	description string,
	repos repository.AuditRepo,
) error {
	entry := &audit.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		OldData:      marshalAudit(before, "old"),
		NewData:      marshalAudit(after, "new"),
		IPAddress:    ip,
		UserAgent:    ua,
		Description:  description,
	}
	return repos.CreateAuditLog(entry)
}

func marshalAudit(v any, which string) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		logger.L().Warn("audit marshal failed", zap.String("data", which), zap.Error(err))
		return nil
	}
	return datatypes.JSON(b)
}
