package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/stepm01/cruzHacks/core"
)

func init() {
	// field validators
	_ = core.Validate.RegisterValidation("grade", validateGrade)
	_ = core.Validate.RegisterValidation("major", validateMajor)
	_ = core.Validate.RegisterValidation("college", validateCollege)
	_ = core.Validate.RegisterValidation("campus", validateCampus)

	// translations
	core.RegisterCustomTranslation("grade", "{0} is not a recognized letter grade")
	core.RegisterCustomTranslation("major", "{0} is not a supported major")
	core.RegisterCustomTranslation("college", "{0} is not a supported community college")
	core.RegisterCustomTranslation("campus", "{0} is not a known UC campus")
}

func validateGrade(fl validator.FieldLevel) bool {
	return ValidGrade(fl.Field().String())
}

func validateMajor(fl validator.FieldLevel) bool {
	return ValidMajor(fl.Field().String())
}

func validateCollege(fl validator.FieldLevel) bool {
	return ValidCollege(fl.Field().String())
}

func validateCampus(fl validator.FieldLevel) bool {
	_, ok := CampusByID(fl.Field().String())
	return ok
}

// NewCourse is the payload for recording a transcript entry by hand.
type NewCourse struct {
	Code  string  `json:"courseCode" validate:"required"`
	Name  string  `json:"courseName" validate:"required"`
	Units float64 `json:"units" validate:"required,gt=0,lte=10"`
	Grade string  `json:"grade" validate:"required,grade"`
	Term  string  `json:"semester"`
}

func (nc *NewCourse) Validate() error {
	nc.Code = core.CleanString(nc.Code)
	nc.Name = core.CleanString(nc.Name)
	nc.Grade = core.CleanString(nc.Grade)
	nc.Term = core.CleanString(nc.Term)
	return core.Validate.Struct(nc)
}

// ProfileUpdate carries the self-reported profile fields. Empty fields are
// left untouched on the stored doc.
type ProfileUpdate struct {
	Name             string `json:"name"`
	Major            string `json:"major" validate:"omitempty,major"`
	CommunityCollege string `json:"communityCollege" validate:"omitempty,college"`
}

func (pu *ProfileUpdate) Validate() error {
	pu.Name = core.CleanString(pu.Name)
	pu.Major = core.CleanString(pu.Major)
	pu.CommunityCollege = core.CleanString(pu.CommunityCollege)
	return core.Validate.Struct(pu)
}

// CampusSelection is the payload for the choose-your-UC step.
type CampusSelection struct {
	Campus string `json:"targetUC" validate:"required,campus"`
}

func (cs *CampusSelection) Validate() error {
	cs.Campus = core.CleanString(cs.Campus)
	return core.Validate.Struct(cs)
}
