package types

import "mdt/internal/models"

type RequestNoteCreate struct {
	ActorId  string          `json:"-"`
	PatrolId *string         `json:"patrolId"`
	Content  string          `json:"content" binding:"required"`
	Type     models.NoteType `json:"type"`
	Pinned   bool            `json:"pinned"`
}

type RequestNoteQuery struct {
	ActorId    string `json:"-"`
	ID         string `json:"-" uri:"id"`
	PinnedOnly bool   `form:"pinnedOnly"`
	PatrolId   string `form:"patrolId"`
}

type RequestNotePin struct {
	ActorId string `json:"-"`
	ID      string `json:"-" uri:"id"`
	Pinned  bool   `json:"pinned"`
}

type RequestOperatorAssign struct {
	ActorId   string `json:"-"`
	OfficerId string `json:"officerId" binding:"required"`
}

type RequestOperatorRelease struct {
	ActorId string `json:"-"`
}

type RequestCentraleOverview struct {
	ActorId string `json:"-"`
}

type ResponseCentraleOverview struct {
	Patrols     []models.Patrol             `json:"patrols"`
	ActiveCalls []models.DispatchCall       `json:"activeCalls"`
	Operator    *models.CentraleOperator    `json:"operator"`
	PinnedNotes []models.CentraleNote       `json:"pinnedNotes"`
	OnDuty      []OnDutyOfficer             `json:"onDuty"`
	CallCounts  map[models.CallStatus]int64 `json:"callCounts"`
	GeneratedAt int64                       `json:"generatedAt"`
}
