package types

import "mdt/internal/models"

type RequestComplaintSubmit struct {
	CitizenName    string `json:"citizenName" binding:"required"`
	CitizenContact string `json:"citizenContact"`
	OfficerName    string `json:"officerName"`
	Description    string `json:"description" binding:"required"`
	IncidentAt     int64  `json:"incidentAt"`
	SubmitIP       string `json:"-"`
}

type ResponseComplaintReceipt struct {
	TrackingNumber string                 `json:"trackingNumber"`
	Status         models.ComplaintStatus `json:"status"`
	CreateAt       int64                  `json:"createAt"`
	UpdateAt       int64                  `json:"updateAt"`
}

type RequestComplaintTrack struct {
	TrackingNumber string `json:"-" uri:"trackingNumber"`
}

type RequestComplaintQuery struct {
	ActorId   string                 `json:"-" form:"-"`
	ID        string                 `json:"-" uri:"id"`
	Status    models.ComplaintStatus `form:"status"`
	HandlerId string                 `form:"handlerId"`
	models.Page
}

type ResponseComplaintList struct {
	List []models.Complaint `json:"list"`
	models.Page
}

type RequestComplaintAssign struct {
	ActorId   string `json:"-"`
	ID        string `json:"-" uri:"id"`
	HandlerId string `json:"handlerId" binding:"required"`
}

type RequestComplaintTransition struct {
	ActorId    string                 `json:"-"`
	ID         string                 `json:"-" uri:"id"`
	Status     models.ComplaintStatus `json:"status" binding:"required"`
	Resolution string                 `json:"resolution"`
}
