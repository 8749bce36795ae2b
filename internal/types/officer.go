package types

type RequestOfficerQuery struct {
	ID              string `json:"-" uri:"id"`
	Query           string `form:"query"`
	GradeId         string `form:"gradeId"`
	IncludeInactive bool   `form:"includeInactive"`
}

type RequestOfficerCreate struct {
	ActorId        string  `json:"-"`
	Username       string  `json:"username" binding:"required"`
	Password       string  `json:"password" binding:"required"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Badge          string  `json:"badge"`
	GradeId        string  `json:"gradeId" binding:"required"`
	VisibleGradeId *string `json:"visibleGradeId"`
}

type RequestOfficerUpdate struct {
	ActorId        string  `json:"-"`
	ID             string  `json:"-" uri:"id"`
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Badge          *string `json:"badge"`
	VisibleGradeId *string `json:"visibleGradeId"`
}

type RequestOfficerSetGrade struct {
	ActorId string `json:"-"`
	ID      string `json:"-" uri:"id"`
	GradeId string `json:"gradeId" binding:"required"`
}

type RequestOfficerState struct {
	ActorId string `json:"-"`
	ID      string `json:"-" uri:"id"`
}

type RequestOfficerResetPassword struct {
	ActorId  string `json:"-"`
	ID       string `json:"-" uri:"id"`
	Password string `json:"password" binding:"required"`
}
