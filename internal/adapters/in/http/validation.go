package http

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/json_types"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/utils"
)

// Кастомные правила для binding-тегов: datekey (YYYY-MM-DD) и clocktime (HH:MM)
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseDateKey(fl.Field().String())
		return err == nil
	})

	v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		_, err := json_types.ParseClockTime(fl.Field().String())
		return err == nil
	})
}
