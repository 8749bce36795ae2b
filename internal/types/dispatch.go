package types

import "mdt/internal/models"

type RequestCallCreate struct {
	ActorId     string  `json:"-"`
	Type        string  `json:"type" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Description string  `json:"description"`
	Priority    *int    `json:"priority"`
	PatrolId    *string `json:"patrolId"`
	Source      string  `json:"source"`
	CallerName  string  `json:"callerName"`
	CallerPhone string  `json:"callerPhone"`
}

type RequestCallQuery struct {
	ID         string            `json:"-" uri:"id"`
	Status     models.CallStatus `form:"status"`
	ActiveOnly bool              `form:"activeOnly"`
	PatrolId   string            `form:"patrolId"`
	models.Page
}

type ResponseCallList struct {
	List []models.DispatchCall `json:"list"`
	models.Page
}

type RequestCallAdvance struct {
	ActorId string            `json:"-"`
	ID      string            `json:"-" uri:"id"`
	Status  models.CallStatus `json:"status" binding:"required"`
}

type RequestCallReassign struct {
	ActorId  string `json:"-"`
	ID       string `json:"-" uri:"id"`
	PatrolId string `json:"patrolId" binding:"required"`
}
