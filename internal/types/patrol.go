package types

import "mdt/internal/models"

type RequestPatrolQuery struct {
	ActorId string `json:"-"`
	ID      string `json:"-" uri:"id"`
}

type RequestPatrolCreate struct {
	ActorId  string `json:"-"`
	Name     string `json:"name" binding:"required"`
	CallSign string `json:"callSign"`
	Vehicle  string `json:"vehicle"`
	Sector   string `json:"sector"`
	Notes    string `json:"notes"`
	Priority *int   `json:"priority"`
}

// RequestPatrolUpdate only touches the fields that are present.
type RequestPatrolUpdate struct {
	ActorId  string               `json:"-"`
	ID       string               `json:"-" uri:"id"`
	Name     *string              `json:"name"`
	CallSign *string              `json:"callSign"`
	Vehicle  *string              `json:"vehicle"`
	Sector   *string              `json:"sector"`
	Notes    *string              `json:"notes"`
	Status   *models.PatrolStatus `json:"status"`
	Priority *int                 `json:"priority"`
}

type RequestPatrolMember struct {
	ActorId   string `json:"-"`
	PatrolId  string `json:"-" uri:"id"`
	OfficerId string `json:"officerId" uri:"officerId"`
}
