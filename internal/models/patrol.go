package models

type PatrolStatus string

const (
	PatrolAvailable PatrolStatus = "available"
	PatrolBusy      PatrolStatus = "busy"
	PatrolEmergency PatrolStatus = "emergency"
	PatrolBreak     PatrolStatus = "break"
	PatrolOffline   PatrolStatus = "offline"
)

// Valid reports membership in the status enum. Any valid status may follow
// any other.
func (s PatrolStatus) Valid() bool {
	switch s {
	case PatrolAvailable, PatrolBusy, PatrolEmergency, PatrolBreak, PatrolOffline:
		return true
	}
	return false
}

const (
	PatrolPriorityMin     = 1
	PatrolPriorityMax     = 5
	PatrolPriorityDefault = 3
)

type Patrol struct {
	ID       string         `gorm:"column:id;primaryKey;type:varchar(50)" json:"id"`
	Name     string         `gorm:"column:name;type:varchar(100);not null" json:"name"`
	CallSign string         `gorm:"column:call_sign;type:varchar(50)" json:"callSign"`
	Vehicle  string         `gorm:"column:vehicle;type:varchar(100)" json:"vehicle"`
	Sector   string         `gorm:"column:sector;type:varchar(100)" json:"sector"`
	Notes    string         `gorm:"column:notes;type:text" json:"notes"`
	Status   PatrolStatus   `gorm:"column:status;type:varchar(20);not null;default:available" json:"status"`
	Priority int            `gorm:"column:priority;not null;default:3" json:"priority"`
	CreateBy string         `gorm:"column:create_by;type:varchar(50)" json:"createBy"`
	CreateAt int64          `gorm:"column:create_at" json:"createAt"`
	UpdateAt int64          `gorm:"column:update_at" json:"updateAt"`
	Members  []PatrolMember `gorm:"-" json:"members"`
}

func (Patrol) TableName() string {
	return "patrols"
}

func (p Patrol) GetID() string {
	return p.ID
}

// Leader returns the leading member, if any.
func (p Patrol) Leader() (PatrolMember, bool) {
	for _, m := range p.Members {
		if m.Role == MemberRoleLeader {
			return m, true
		}
	}
	return PatrolMember{}, false
}

type MemberRole string

const (
	MemberRoleMember MemberRole = "member"
	MemberRoleLeader MemberRole = "leader"
)

// PatrolMember links an officer to a patrol. OfficerId is unique: an officer
// sits in at most one patrol. LeaderKey carries the patrol id while the row
// is the leader, so a patrol has at most one.
type PatrolMember struct {
	ID        string       `gorm:"column:id;primaryKey;type:varchar(50)" json:"id"`
	PatrolId  string       `gorm:"column:patrol_id;type:varchar(50);not null;index" json:"patrolId"`
	OfficerId string       `gorm:"column:officer_id;type:varchar(50);not null;uniqueIndex" json:"officerId"`
	Role      MemberRole   `gorm:"column:role;type:varchar(20);not null;default:member" json:"role"`
	LeaderKey *string      `gorm:"column:leader_key;type:varchar(50);uniqueIndex" json:"-"`
	JoinedAt  int64        `gorm:"column:joined_at" json:"joinedAt"`
	Officer   OfficerBrief `gorm:"-" json:"officer"`
}

func (PatrolMember) TableName() string {
	return "patrol_members"
}
