package attendance

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/mahudhurio/core"
)

var (
	isoDateTag  = "isodate"
	isoDateText = "must be a valid ISO date (YYYY-MM-DD)"

	yearMonthTag  = "yyyymm"
	yearMonthText = "must be a valid month (YYYY-MM)"

	validatorsOnce sync.Once
)

// InitValidators registers this package's validation tags on the app
// validator. Idempotent; NewDispatcher calls it so tests need no extra setup.
func InitValidators() {
	validatorsOnce.Do(func() {
		core.InitValidators()

		_ = core.Validate.RegisterValidation(isoDateTag, isoDateValidation)
		core.RegisterCustomTranslation(isoDateTag, isoDateText)

		_ = core.Validate.RegisterValidation(yearMonthTag, yearMonthValidation)
		core.RegisterCustomTranslation(yearMonthTag, yearMonthText)
	})
}

func isoDateValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(dateLayout, fl.Field().String())
	return err == nil
}

func yearMonthValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(monthLayout, fl.Field().String())
	return err == nil
}
