package models

// Officer is an MDT account. GradeId is the only grade used for
// authorization; VisibleGradeId only changes what other officers see.
type Officer struct {
	ID                  string  `gorm:"column:id;primaryKey;type:varchar(50)" json:"id"`
	Username            string  `gorm:"column:username;type:varchar(64);not null;uniqueIndex" json:"username"`
	Password            string  `gorm:"column:password;type:varchar(255);not null" json:"-"`
	FirstName           string  `gorm:"column:first_name;type:varchar(100)" json:"firstName"`
	LastName            string  `gorm:"column:last_name;type:varchar(100)" json:"lastName"`
	Badge               string  `gorm:"column:badge;type:varchar(20);index" json:"badge"`
	GradeId             string  `gorm:"column:grade_id;type:varchar(50);not null;index" json:"gradeId"`
	VisibleGradeId      *string `gorm:"column:visible_grade_id;type:varchar(50)" json:"visibleGradeId,omitempty"`
	Active              *bool   `gorm:"column:active;default:true" json:"active"`
	TotalServiceSeconds int64   `gorm:"column:total_service_seconds;not null;default:0" json:"totalServiceSeconds"`
	LastLoginAt         int64   `gorm:"column:last_login_at" json:"lastLoginAt"`
	CreateBy            string  `gorm:"column:create_by;type:varchar(50)" json:"createBy"`
	CreateAt            int64   `gorm:"column:create_at" json:"createAt"`
	UpdateAt            int64   `gorm:"column:update_at" json:"updateAt"`
}

func (Officer) TableName() string {
	return "officers"
}

func (o Officer) GetID() string {
	return o.ID
}

// IsActive treats a missing flag as active.
func (o Officer) IsActive() bool {
	if o.Active == nil {
		return true
	}
	return *o.Active
}

// DisplayGradeId is the grade shown on rosters.
func (o Officer) DisplayGradeId() string {
	if o.VisibleGradeId != nil && *o.VisibleGradeId != "" {
		return *o.VisibleGradeId
	}
	return o.GradeId
}

func (o Officer) FullName() string {
	if o.FirstName == "" && o.LastName == "" {
		return o.Username
	}
	return o.FirstName + " " + o.LastName
}

// OfficerBrief is the roster view of an officer.
type OfficerBrief struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	Badge        string `json:"badge"`
	DisplayGrade string `json:"displayGrade"`
}
