package port

//go:generate mockgen -source=validator.go -destination=mock/validator.go -package=mock

// Validator checks a decoded request and returns *domain.ValidationError on failure.
type Validator interface {
	Validate(req any) error
}
