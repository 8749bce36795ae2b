package types

import "mdt/internal/models"

type RequestAuditLogQuery struct {
	ViewerId string `json:"-" form:"-"`
	ActorId  string `form:"actorId"`
	Action   string `form:"action"`
	models.Page
}

type ResponseAuditLogList struct {
	List []models.AuditLog `json:"list"`
	models.Page
}
