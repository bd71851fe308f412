package attendance

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/mahudhurio/core"
)

var (
	statusTag  = "status"
	statusText = "status must be one of Present, Absent or Late"
)

// register custom validators
func init() {
	_ = core.Validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(statusTag, statusText)
}

// Custom Validators

// statusValidation checks that the field is one of Statuses
func statusValidation(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).Valid()
}

type stagedStatus struct {
	Status Status `json:"status" validate:"status"`
}

type commitDate struct {
	Date string `json:"date" validate:"notblank"`
}
