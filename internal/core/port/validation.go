package port

// Validator checks struct tags and reports failures as *domain.ValidationError.
type Validator interface {
	ValidateStruct(s interface{}) error
}
