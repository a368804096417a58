package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Human readable names for EvaluateRequest fields
var fieldLabels = map[string]string{
	"District":      "District",
	"LocationScore": "Location score",
	"SizeSqft":      "Property size (sqft)",
	"NumRooms":      "Number of rooms",
	"LoanAmount":    "Loan amount",
	"CreditScore":   "Credit score",
	"AnnualIncome":  "Annual income",
}

// validationMessage turns a binding error into a message fit for the user
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request: " + err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", label))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", label, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", label, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", label))
		}
	}
	return strings.Join(msgs, "; ")
}
