package models

type AuditLog struct {
	ID         string `gorm:"column:id;primaryKey;type:varchar(50)" json:"id"`
	ActorId    string `gorm:"column:actor_id;type:varchar(50);index" json:"actorId"`
	ActorName  string `gorm:"column:actor_name;type:varchar(64)" json:"actorName"`
	Action     string `gorm:"column:action;type:varchar(100);index" json:"action"`
	Target     string `gorm:"column:target;type:varchar(50)" json:"target"`
	Method     string `gorm:"column:method;type:varchar(10)" json:"method"`
	Path       string `gorm:"column:path;type:varchar(255)" json:"path"`
	StatusCode int    `gorm:"column:status_code" json:"statusCode"`
	IPAddress  string `gorm:"column:ip_address;type:varchar(64)" json:"ipAddress"`
	Body       string `gorm:"column:body;type:text" json:"body"`
	CreatedAt  int64  `gorm:"column:created_at;index" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

type Page struct {
	Index int64 `json:"index" form:"index"`
	Size  int64 `json:"size" form:"size"`
	Total int64 `json:"total" form:"total"`
}

const defaultPageSize = 20

// Normalize clamps the page to sane bounds and returns limit/offset.
func (p Page) Normalize() (limit, offset int) {
	size := p.Size
	if size <= 0 || size > 200 {
		size = defaultPageSize
	}
	index := p.Index
	if index < 1 {
		index = 1
	}
	return int(size), int((index - 1) * size)
}
