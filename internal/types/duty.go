package types

import "mdt/internal/models"

type RequestDutyStart struct {
	OfficerId string `json:"-"`
}

type RequestDutyEnd struct {
	OfficerId string `json:"-"`
}

type RequestDutyForceEnd struct {
	ActorId   string `json:"-"`
	OfficerId string `json:"-" uri:"officerId"`
}

type RequestDutyStatus struct {
	ActorId   string `json:"-"`
	OfficerId string `json:"-" uri:"officerId"`
}

type RequestDutyHistory struct {
	ActorId   string `json:"-"`
	OfficerId string `json:"-" uri:"officerId"`
	models.Page
}

type RequestOnDuty struct {
	ActorId string `json:"-"`
}

type ResponseDutyStatus struct {
	OfficerId           string              `json:"officerId"`
	OnDuty              bool                `json:"onDuty"`
	Session             *models.DutySession `json:"session"`
	ElapsedSeconds      int64               `json:"elapsedSeconds"`
	TotalServiceSeconds int64               `json:"totalServiceSeconds"`
	Patrol              *PatrolBrief        `json:"patrol"`
	IsOperator          bool                `json:"isOperator"`
}

type PatrolBrief struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	CallSign string            `json:"callSign"`
	Role     models.MemberRole `json:"role"`
}

type ResponseDutyHistory struct {
	List []models.DutySession `json:"list"`
	models.Page
}

type OnDutyOfficer struct {
	Officer        models.OfficerBrief `json:"officer"`
	SessionId      string              `json:"sessionId"`
	StartAt        int64               `json:"startAt"`
	ElapsedSeconds int64               `json:"elapsedSeconds"`
}
