package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("mes_ref", func(fl validator.FieldLevel) bool {
		return domain.ValidMesReferencia(fl.Field().String())
	})
	_ = v.RegisterValidation("ticket_status", func(fl validator.FieldLevel) bool {
		return domain.ValidTicketStatus(domain.TicketStatus(fl.Field().String()))
	})
	return v
}

// Validate runs struct validation and converts field failures into a
// validation error whose details map field names to the broken rule.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("Dados inválidos", nil)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fieldName(fe)] = ruleMessage(fe)
	}
	return apperrors.NewValidationError("Dados inválidos", details)
}

func fieldName(fe validator.FieldError) string {
	// Namespace comes as Struct.Field; keep only the leaf, snake-cased the
	// way the JSON tags spell it.
	parts := strings.Split(fe.Namespace(), ".")
	return toSnake(parts[len(parts)-1])
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "email":
		return "email inválido"
	case "uuid", "uuid4":
		return "identificador inválido"
	case "min":
		return fmt.Sprintf("mínimo de %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("máximo de %s caracteres", fe.Param())
	case "gt":
		return fmt.Sprintf("deve ser maior que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("deve ser maior ou igual a %s", fe.Param())
	case "mes_ref":
		return "use o formato AAAA-MM"
	case "ticket_status":
		return "status desconhecido"
	default:
		return fmt.Sprintf("regra %s violada", fe.Tag())
	}
}

func toSnake(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			// Break before an uppercase run start and before a run's last
			// letter when it opens a new word (ID stays "id", CNPJ "cnpj").
			if i > 0 && (runes[i-1] < 'A' || runes[i-1] > 'Z' ||
				(i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z')) {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
