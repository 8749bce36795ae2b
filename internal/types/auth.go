package types

import "mdt/internal/models"

type RequestLogin struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ResponseLogin struct {
	Token     string          `json:"token"`
	ExpiresAt int64           `json:"expiresAt"`
	Profile   ResponseProfile `json:"profile"`
}

type RequestLogout struct {
	OfficerId string `json:"-"`
	TokenId   string `json:"-"`
	ExpiresAt int64  `json:"-"`
}

type RequestProfile struct {
	OfficerId string `json:"-"`
}

type ResponseProfile struct {
	Officer      models.Officer      `json:"officer"`
	Grade        models.Grade        `json:"grade"`
	VisibleGrade models.Grade        `json:"visibleGrade"`
	Capabilities []models.Capability `json:"capabilities"`
}

type RequestChangePassword struct {
	OfficerId   string `json:"-"`
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}
