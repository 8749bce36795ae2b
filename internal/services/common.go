package services

import (
	"errors"
	"strings"

	"mdt/internal/ctx"
	"mdt/internal/models"
	"mdt/pkg/apperr"
)

// loadActor returns the acting officer and the grade used for
// authorization. The visible grade is never consulted.
func loadActor(c *ctx.Context, officerId string) (models.Officer, models.Grade, error) {
	officer, err := c.DB.Officer().Get(officerId)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return officer, models.Grade{}, apperr.ErrUnauthenticated.WithMessage("unknown officer %s", officerId)
		}
		return officer, models.Grade{}, err
	}
	if !officer.IsActive() {
		return officer, models.Grade{}, apperr.ErrOfficerInactive
	}

	grade, err := c.DB.Grade().Get(officer.GradeId)
	if err != nil {
		return officer, grade, err
	}
	return officer, grade, nil
}

// authorize loads the actor and checks one capability.
func authorize(c *ctx.Context, officerId string, capability models.Capability) (models.Officer, models.Grade, error) {
	officer, grade, err := loadActor(c, officerId)
	if err != nil {
		return officer, grade, err
	}
	if !grade.Can(capability) {
		return officer, grade, apperr.Denied("grade %s does not grant %s", grade.Name, capability)
	}
	return officer, grade, nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Invalid("%s is required", field)
	}
	return nil
}

// unix is the current time of c in seconds.
func unix(c *ctx.Context) int64 {
	return c.Now().Unix()
}
