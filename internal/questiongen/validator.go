package questiongen

import "fmt"

// Validator checks a recovered question before it is returned.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages and logs.
	Name() string

	// Validate returns nil if the question passes.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// SchemaValidator checks the question against QuestionSchema: the base
// keys must be present. Extra keys pass through untouched.
type SchemaValidator struct{}

func (v *SchemaValidator) Name() string { return "schema" }

func (v *SchemaValidator) Validate(q *Question) *ValidationError {
	sch, err := compiledSchema()
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if err := sch.Validate(q.Fields); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	return nil
}
