package repo

import (
	"errors"
	"path/filepath"
	"testing"

	"mdt/internal/models"
	"mdt/pkg/apperr"
	"mdt/pkg/tools"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newEntry(t *testing.T) (InterEntryRepo, *gorm.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "mdt.db") + "?_pragma=busy_timeout(5000)&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(AllModels()...))

	return NewRepoEntry(db), db
}

func seedOfficer(t *testing.T, e InterEntryRepo, username string) models.Officer {
	t.Helper()

	grade := models.Grade{ID: tools.NewId("gr"), Name: "Officier " + username, Level: 20}
	require.NoError(t, e.Grade().Create(grade))

	o := models.Officer{ID: tools.NewId("of"), Username: username, GradeId: grade.ID, Active: tools.BoolPtr(true)}
	require.NoError(t, e.Officer().Create(o))
	return o
}

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil))
	assert.Equal(t, apperr.ErrDuplicate, translate(gorm.ErrDuplicatedKey))
	assert.Equal(t, apperr.ErrDuplicate, translate(errors.New("constraint failed: UNIQUE constraint failed: duty_sessions.open_key (2067)")))
	assert.Equal(t, apperr.ErrDuplicate, translate(errors.New("Error 1062 (23000): Duplicate entry 'of-1' for key 'open_key'")))

	structured := apperr.NotFound("patrol", "pt-1")
	assert.Equal(t, structured, translate(structured))

	other := errors.New("disk I/O error")
	assert.Equal(t, other, translate(other))
}

// A row that holds the open key without looking open (end_at set) gets past
// the pre-check; the unique index still refuses the second session.
func TestDutyStartOpenKeyHeld(t *testing.T) {
	e, db := newEntry(t)
	o := seedOfficer(t, e, "alpha")

	stuck := models.DutySession{
		ID:        tools.NewId("ds"),
		OfficerId: o.ID,
		StartAt:   100,
		EndAt:     tools.Int64Ptr(200),
		OpenKey:   tools.StringPtr(o.ID),
	}
	require.NoError(t, db.Create(&stuck).Error)

	_, err := e.Duty().Start(o.ID, 300)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrAlreadyOnDuty), err)

	var count int64
	require.NoError(t, db.Model(&models.DutySession{}).Where("officer_id = ?", o.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAssignOperatorActiveKeyHeld(t *testing.T) {
	e, db := newEntry(t)
	o := seedOfficer(t, e, "alpha")

	_, err := e.Duty().Start(o.ID, 100)
	require.NoError(t, err)

	stuck := models.CentraleOperator{
		ID:         tools.NewId("op"),
		OfficerId:  o.ID,
		Active:     false,
		ActiveKey:  tools.StringPtr(models.OperatorActiveKey),
		AssignedAt: 50,
	}
	require.NoError(t, db.Create(&stuck).Error)

	_, err = e.Centrale().AssignOperator(o.ID, o.ID, 200)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrDuplicate), err)
}

func TestPatrolMemberOfficerUnique(t *testing.T) {
	e, db := newEntry(t)
	o := seedOfficer(t, e, "alpha")

	patrols := make([]string, 2)
	for i, name := range []string{"Adam-12", "Lincoln-30"} {
		p := models.Patrol{ID: tools.NewId("pt"), Name: name, Status: models.PatrolAvailable, Priority: models.PatrolPriorityDefault}
		require.NoError(t, e.Patrol().Create(p))
		patrols[i] = p.ID
	}

	_, err := e.Patrol().Assign(patrols[0], o.ID, 100)
	require.NoError(t, err)

	// the unique officer_id column backs the membership pre-check
	dup := models.PatrolMember{ID: tools.NewId("pm"), PatrolId: patrols[1], OfficerId: o.ID, Role: models.MemberRoleMember, JoinedAt: 200}
	err = db.Create(&dup).Error
	require.Error(t, err)
	assert.Equal(t, apperr.ErrDuplicate, translate(err))

	_, err = e.Patrol().Assign(patrols[1], o.ID, 200)
	assert.True(t, errors.Is(err, apperr.ErrAlreadyAssigned), err)
}

func TestDeleteNote(t *testing.T) {
	e, _ := newEntry(t)
	o := seedOfficer(t, e, "alpha")

	note := models.CentraleNote{ID: tools.NewId("note"), AuthorId: o.ID, Content: "Road closed on Route 68", Type: models.NoteInfo, CreateAt: 100}
	require.NoError(t, e.Centrale().CreateNote(note))

	require.NoError(t, e.Centrale().DeleteNote(note.ID))

	err := e.Centrale().DeleteNote(note.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), err)
}
