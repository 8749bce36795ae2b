package models

type NoteType string

const (
	NoteInfo    NoteType = "info"
	NoteWarning NoteType = "warning"
	NoteUrgent  NoteType = "urgent"
)

func (t NoteType) Valid() bool {
	return t == NoteInfo || t == NoteWarning || t == NoteUrgent
}

type CentraleNote struct {
	ID       string   `gorm:"column:id;primaryKey;type:varchar(50)" json:"id"`
	AuthorId string   `gorm:"column:author_id;type:varchar(50);not null;index" json:"authorId"`
	PatrolId *string  `gorm:"column:patrol_id;type:varchar(50);index" json:"patrolId"`
	Content  string   `gorm:"column:content;type:text;not null" json:"content"`
	Type     NoteType `gorm:"column:type;type:varchar(20);not null;default:info" json:"type"`
	Pinned   bool     `gorm:"column:pinned;not null;default:false" json:"pinned"`
	CreateAt int64    `gorm:"column:create_at;index" json:"createAt"`
}

func (CentraleNote) TableName() string {
	return "centrale_notes"
}

func (n CentraleNote) GetID() string {
	return n.ID
}

// OperatorActiveKey is stored in CentraleOperator.ActiveKey on the single
// active row.
const OperatorActiveKey = "current"

type CentraleOperator struct {
	ID         string  `gorm:"column:id;primaryKey;type:varchar(50)" json:"id"`
	OfficerId  string  `gorm:"column:officer_id;type:varchar(50);not null;index" json:"officerId"`
	AssignedBy string  `gorm:"column:assigned_by;type:varchar(50)" json:"assignedBy"`
	Active     bool    `gorm:"column:active;not null;default:false;index" json:"active"`
	ActiveKey  *string `gorm:"column:active_key;type:varchar(20);uniqueIndex" json:"-"`
	AssignedAt int64   `gorm:"column:assigned_at" json:"assignedAt"`
	ReleasedAt *int64  `gorm:"column:released_at" json:"releasedAt"`

	Officer OfficerBrief `gorm:"-" json:"officer"`
}

func (CentraleOperator) TableName() string {
	return "centrale_operators"
}

func (o CentraleOperator) GetID() string {
	return o.ID
}
