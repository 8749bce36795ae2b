package types

type RequestGradeQuery struct {
	ID string `json:"id" form:"id" uri:"id"`
}

type RequestGradeCreate struct {
	ActorId string                 `json:"-"`
	Name    string                 `json:"name" binding:"required"`
	Level   int                    `json:"level" binding:"required"`
	Flags   map[string]interface{} `json:"permissions"`
}

type RequestGradeUpdate struct {
	ActorId string  `json:"-"`
	ID      string  `json:"-" uri:"id"`
	Name    *string `json:"name"`
	Level   *int    `json:"level"`
}

// RequestGradePermissions carries the flag map sent by the admin UI.
type RequestGradePermissions struct {
	ActorId string                 `json:"-"`
	ID      string                 `json:"-" uri:"id"`
	Flags   map[string]interface{} `json:"permissions" binding:"required"`
}

type RequestGradeDelete struct {
	ActorId string `json:"-"`
	ID      string `json:"-" uri:"id"`
}
