package services

import (
	"errors"
	"time"
	"unicode/utf8"

	"mdt/internal/ctx"
	"mdt/internal/global"
	"mdt/internal/models"
	"mdt/internal/types"
	"mdt/pkg/apperr"
	"mdt/pkg/tools"

	"github.com/zeromicro/go-zero/core/logc"
)

const minPasswordLength = 8

type authService struct {
	ctx *ctx.Context
}

type InterAuthService interface {
	Login(req interface{}) (interface{}, interface{})
	Logout(req interface{}) (interface{}, interface{})
	Profile(req interface{}) (interface{}, interface{})
	ChangePassword(req interface{}) (interface{}, interface{})
}

func newInterAuthService(ctx *ctx.Context) InterAuthService {
	return &authService{
		ctx: ctx,
	}
}

// Login never tells a wrong username from a wrong password.
func (a authService) Login(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestLogin)

	officer, err := a.ctx.DB.Officer().GetByUsername(r.Username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrBadCredentials
		}
		return nil, err
	}
	if err := tools.CheckPassword(officer.Password, r.Password); err != nil {
		logc.Infof(a.ctx.Ctx, "failed login for %s", r.Username)
		return nil, apperr.ErrBadCredentials
	}
	if !officer.IsActive() {
		return nil, apperr.ErrOfficerInactive
	}

	now := a.ctx.Now()
	ttl := time.Duration(global.Config.Jwt.ExpireHours) * time.Hour
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	token, claims, err := tools.GenerateToken(global.SignKey(), officer.ID, officer.Username, ttl, now)
	if err != nil {
		return nil, err
	}

	if err := a.ctx.DB.Officer().TouchLogin(officer.ID, now.Unix()); err != nil {
		logc.Errorf(a.ctx.Ctx, "record login of %s: %s", officer.ID, err.Error())
	}

	profile, err := a.profile(officer.ID)
	if err != nil {
		return nil, err
	}

	return types.ResponseLogin{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
		Profile:   profile,
	}, nil
}

// Logout revokes the token until it would have expired anyway.
func (a authService) Logout(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestLogout)

	ttl := time.Until(time.Unix(r.ExpiresAt, 0))
	if err := a.ctx.Redis.Session().Revoke(r.TokenId, r.OfficerId, ttl); err != nil {
		return nil, err
	}
	return "logged out", nil
}

func (a authService) Profile(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestProfile)

	profile, err := a.profile(r.OfficerId)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (a authService) profile(officerId string) (types.ResponseProfile, error) {
	officer, grade, err := loadActor(a.ctx, officerId)
	if err != nil {
		return types.ResponseProfile{}, err
	}

	visible := grade
	if officer.DisplayGradeId() != grade.ID {
		v, err := a.ctx.DB.Grade().Get(officer.DisplayGradeId())
		if err == nil {
			visible = v
		} else if !errors.Is(err, apperr.ErrNotFound) {
			return types.ResponseProfile{}, err
		}
	}

	caps := grade.Permissions.Capabilities()
	if grade.IsSuperuser() {
		caps = append([]models.Capability{models.CapBase}, models.AllCapabilities()...)
	}

	return types.ResponseProfile{
		Officer:      officer,
		Grade:        grade,
		VisibleGrade: visible,
		Capabilities: caps,
	}, nil
}

func (a authService) ChangePassword(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestChangePassword)

	officer, err := a.ctx.DB.Officer().Get(r.OfficerId)
	if err != nil {
		return nil, err
	}
	if err := tools.CheckPassword(officer.Password, r.OldPassword); err != nil {
		return nil, apperr.ErrBadCredentials.WithMessage("current password is wrong")
	}
	if err := checkPassword(r.NewPassword); err != nil {
		return nil, err
	}

	hashed, err := tools.HashPassword(r.NewPassword)
	if err != nil {
		return nil, err
	}
	if err := a.ctx.DB.Officer().SetPassword(officer.ID, hashed, unix(a.ctx)); err != nil {
		return nil, err
	}
	return "password changed", nil
}

func checkPassword(p string) error {
	if utf8.RuneCountInString(p) < minPasswordLength {
		return apperr.Invalid("password must be at least %d characters", minPasswordLength)
	}
	if len(p) > tools.MaxPasswordBytes {
		return apperr.Invalid("password must be at most %d bytes", tools.MaxPasswordBytes)
	}
	return nil
}
