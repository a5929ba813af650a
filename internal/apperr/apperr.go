package apperr

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Persistence failure categories. Repositories and services return these
// wrapped around the underlying storage error so handlers can map them to
// responses without leaking engine details.
var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateEntry      = errors.New("entry already exists")
	ErrReferencedElsewhere = errors.New("record is referenced elsewhere")
	ErrConstraintViolated  = errors.New("value violates a storage constraint")
)

// Validation rule identifiers carried by ValidationError.
const (
	RuleRequired = "required"
	RuleNumeric  = "numeric"
	RuleInteger  = "integer"
	RuleRange    = "range"
	RuleEmail    = "email"
	RulePhone    = "phone"
)

// ValidationError reports a business-rule violation detected before any
// write reaches storage.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(field, rule, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Classify translates storage-layer errors into the persistence taxonomy.
// Unique and foreign-key violations arrive pre-translated by GORM
// (TranslateError); CHECK violations are only identifiable by message.
// Anything unrecognized is wrapped as-is so the cause stays in the logs.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicateEntry, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrReferencedElsewhere, err)
	case strings.Contains(err.Error(), "CHECK constraint failed"):
		return fmt.Errorf("%w: %v", ErrConstraintViolated, err)
	default:
		return fmt.Errorf("persistence failure: %w", err)
	}
}

// ClassifyCreate is Classify for inserts. A foreign-key violation on an
// insert means the referenced row does not exist, which is ErrNotFound
// territory; ErrReferencedElsewhere stays reserved for blocked deletes.
func ClassifyCreate(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return Classify(err)
}
