package routes

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"autogenics-server/catalog"
)

// RegisterValidators installs the booking field validators on gin's
// binding engine. Call once from main before serving.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("bookingdate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})

	v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return catalog.IsTimeSlot(fl.Field().String())
	})

	v.RegisterValidation("serviceid", func(fl validator.FieldLevel) bool {
		_, ok := catalog.ServiceByID(fl.Field().String())
		return ok
	})
}
