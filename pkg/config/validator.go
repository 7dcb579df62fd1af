package config

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Validator 配置验证器
type Validator struct {
	validate *validator.Validate
}

// NewValidator 创建验证器
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate 验证配置结构体
// 支持标准的 validator tag：required、min/max、gte/lte、oneof、dive 等
func (v *Validator) Validate(cfg any) error {
	if cfg == nil {
		return ErrNilConfig
	}

	if err := v.validate.Struct(cfg); err != nil {
		return errors.Wrap(ErrValidationFailed, formatValidationErrors(err))
	}
	return nil
}

// RegisterRule 注册自定义验证规则
func (v *Validator) RegisterRule(tag string, fn validator.Func) error {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		return errors.Wrapf(err, "failed to register custom validation %s", tag)
	}
	return nil
}

func formatValidationErrors(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("field '%s' is required", field))
		case "min", "gte":
			parts = append(parts, fmt.Sprintf("field '%s' must be at least %s", field, fe.Param()))
		case "max", "lte":
			parts = append(parts, fmt.Sprintf("field '%s' must be at most %s", field, fe.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("field '%s' must be one of [%s]", field, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("field '%s' failed validation '%s'", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
