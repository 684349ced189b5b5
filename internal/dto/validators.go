package dto

import (
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/SscSPs/association_manager_app/internal/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding tags used by the request DTOs
// ("cpf", "entrytype") on gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return utils.ValidateCPF(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("entrytype", func(fl validator.FieldLevel) bool {
		return domain.EntryType(fl.Field().String()).IsValid()
	})
}
