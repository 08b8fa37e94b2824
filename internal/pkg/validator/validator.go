package validator

import (
	playground "github.com/go-playground/validator/v10"
)

// Validator validates incoming API requests. Struct tags are checked by
// go-playground/validator; domain rules that tags cannot express live in
// the per-request methods.
type Validator struct {
	validate *playground.Validate
}

func New() *Validator {
	return &Validator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}
