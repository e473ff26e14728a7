package logging

import (
	"context"

	"go.uber.org/zap"
)

// LogAuditEvent logs a structured audit event for owner-initiated mutations.
//
// Args:
//   - action: the action performed (e.g., "create", "reorder", "bulk_delete")
//   - userID: the user performing the action
//   - resourceType: the type of resource (e.g., "block", "profile")
//   - resourceID: the ID of the resource
//   - result: "success" or "failure"
//   - details: optional additional details
func LogAuditEvent(
	ctx context.Context,
	action, userID, resourceType, resourceID, result string,
	details map[string]any,
) {
	logger := LoggerFromContext(ctx)

	logger.Info("Audit event",
		zap.String("audit.action", action),
		zap.String("audit.user_id", userID),
		zap.String("audit.resource_type", resourceType),
		zap.String("audit.resource_id", resourceID),
		zap.String("audit.result", result),
		zap.Any("audit.details", details),
	)
}
