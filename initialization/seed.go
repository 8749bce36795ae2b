package initialization

import (
	_ "embed"
	"fmt"

	"mdt/internal/ctx"
	"mdt/internal/global"
	"mdt/internal/models"
	"mdt/pkg/tools"

	"github.com/zeromicro/go-zero/core/logc"
	"gopkg.in/yaml.v3"
)

//go:embed grades.yaml
var gradesYAML []byte

type seedGrade struct {
	Name        string                 `yaml:"name"`
	Level       int                    `yaml:"level"`
	Permissions map[string]interface{} `yaml:"permissions"`
}

// SeedGrades fills an empty grades table from grades.yaml.
func SeedGrades(ctx *ctx.Context) error {
	n, err := ctx.DB.Grade().Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var seeds []seedGrade
	if err := yaml.Unmarshal(gradesYAML, &seeds); err != nil {
		return fmt.Errorf("parse grades.yaml: %w", err)
	}

	now := ctx.Now().Unix()
	for _, s := range seeds {
		perms, err := models.DecodePermissions(s.Permissions)
		if err != nil {
			return fmt.Errorf("grade %s: %w", s.Name, err)
		}

		grade := models.Grade{
			ID:          tools.NewId("gr"),
			Name:        s.Name,
			Level:       s.Level,
			Permissions: perms,
			UpdateBy:    "system",
			UpdateAt:    now,
		}
		if err := ctx.DB.Grade().Create(grade); err != nil {
			return fmt.Errorf("seed grade %s: %w", s.Name, err)
		}
	}

	logc.Infof(ctx.Ctx, "seeded %d grades", len(seeds))
	return nil
}

// SeedAdmin creates the first account, holding the top grade, when no
// officer exists yet. Without a configured password one is generated and
// logged once.
func SeedAdmin(ctx *ctx.Context) error {
	officers, err := ctx.DB.Officer().List("", "", true)
	if err != nil {
		return err
	}
	if len(officers) > 0 {
		return nil
	}

	grades, err := ctx.DB.Grade().List()
	if err != nil {
		return err
	}
	if len(grades) == 0 {
		return fmt.Errorf("no grade to give the admin account")
	}

	password := global.Config.Admin.Password
	generated := password == ""
	if generated {
		password = tools.RandId()
	}
	hashed, err := tools.HashPassword(password)
	if err != nil {
		return err
	}

	now := ctx.Now().Unix()
	admin := models.Officer{
		ID:        tools.NewId("of"),
		Username:  global.Config.Admin.Username,
		Password:  hashed,
		FirstName: "Admin",
		GradeId:   grades[0].ID,
		Active:    tools.BoolPtr(true),
		CreateBy:  "system",
		CreateAt:  now,
		UpdateAt:  now,
	}
	if err := ctx.DB.Officer().Create(admin); err != nil {
		return err
	}

	if generated {
		logc.Infof(ctx.Ctx, "created admin account %q with password %q, change it after first login", admin.Username, password)
	} else {
		logc.Infof(ctx.Ctx, "created admin account %q", admin.Username)
	}
	return nil
}
