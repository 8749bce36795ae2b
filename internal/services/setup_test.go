package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"mdt/internal/ctx"
	"mdt/internal/models"
	"mdt/internal/repo"
	"mdt/pkg/apperr"
	"mdt/pkg/client"
	"mdt/pkg/tools"

	"github.com/stretchr/testify/require"
)

// fixture is a fresh sqlite database with three grades and a clock the test
// moves by hand.
type fixture struct {
	c   *ctx.Context
	now time.Time

	chief      models.Grade
	lieutenant models.Grade
	officer    models.Grade
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := client.NewDBClient(client.DBConfig{
		Driver: "sqlite",
		DBName: filepath.Join(t.TempDir(), "mdt.db"),
	})
	require.NoError(t, err)

	f := &fixture{now: time.Unix(1_700_000_000, 0)}
	f.c = ctx.NewContext(context.Background(), repo.NewRepoEntry(db), nil)
	f.c.Clock = func() time.Time { return f.now }

	f.chief = f.grade(t, "Chef", models.SuperuserLevel, models.Permissions{})
	f.lieutenant = f.grade(t, "Lieutenant", 60, models.Permissions{
		ViewCentrale:     true,
		ManagePatrols:    true,
		ManageDispatch:   true,
		ManageNotes:      true,
		AssignOperator:   true,
		ForceEndDuty:     true,
		ManageComplaints: true,
		ManageOfficers:   true,
		ManageGrades:     true,
	})
	f.officer = f.grade(t, "Officier", 20, models.Permissions{})

	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) grade(t *testing.T, name string, level int, perms models.Permissions) models.Grade {
	t.Helper()
	g := models.Grade{
		ID:          tools.NewId("gr"),
		Name:        name,
		Level:       level,
		Permissions: perms,
	}
	require.NoError(t, f.c.DB.Grade().Create(g))
	return g
}

func (f *fixture) member(t *testing.T, username string, grade models.Grade) models.Officer {
	t.Helper()
	o := models.Officer{
		ID:       tools.NewId("of"),
		Username: username,
		Password: "x",
		LastName: username,
		GradeId:  grade.ID,
		Active:   tools.BoolPtr(true),
		CreateAt: f.now.Unix(),
	}
	require.NoError(t, f.c.DB.Officer().Create(o))
	return o
}

// call unpacks the (data, error) pair returned by service methods.
func call(fn func(interface{}) (interface{}, interface{}), req interface{}) (interface{}, error) {
	data, e := fn(req)
	if e == nil {
		return data, nil
	}
	err, ok := e.(error)
	if !ok {
		return data, apperr.Invalid("%v", e)
	}
	return data, err
}

func requireCode(t *testing.T, err error, target *apperr.Error) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, errors.Is(err, target), "want %s, got %v", target.Code, err)
}
