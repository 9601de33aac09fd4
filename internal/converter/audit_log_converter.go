package converter

import (
	"borewell-booking/internal/delivery/dto"
	"borewell-booking/internal/domain/entity"
)

// AuditLogToResponse converts an AuditLog entity to AuditLogResponse DTO
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	return &dto.AuditLogResponse{
		ID:         log.ID,
		Action:     log.Action,
		EntityType: log.EntityType,
		EntityID:   log.EntityID,
		Metadata:   log.Metadata,
		CreatedAt:  log.CreatedAt,
	}
}

func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i := range logs {
		responses[i] = *AuditLogToResponse(&logs[i])
	}
	return responses
}

// AuditQueryToFilter maps listing filters onto the store filter. A booking id
// also pins the entity type, since audit ids are only unique per type.
func AuditQueryToFilter(query *dto.AuditLogQuery) entity.AuditLogFilter {
	filter := entity.AuditLogFilter{Action: query.Action}
	if query.BookingID != nil {
		filter.EntityType = entity.AuditEntityBooking
		filter.EntityID = query.BookingID.String()
	}
	return filter
}
