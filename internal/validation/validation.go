// Package validation wraps go-playground/validator and turns its failures
// into field keyed messages that handlers render as 422 responses.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout 日期字段的输入格式
const DateLayout = "2006-01-02"

// ErrInvalid 所有校验错误都可以通过 errors.Is 识别
var ErrInvalid = errors.New("validation failed")

// Error collects messages per field. Field names follow the json tags,
// slice elements are addressed as "tags.0".
type Error struct {
	Fields map[string][]string
}

// New 创建空的校验错误
func New() *Error {
	return &Error{Fields: map[string][]string{}}
}

// Field builds an error holding a single message.
func Field(field, message string) *Error {
	e := New()
	e.Add(field, message)
	return e
}

// Add 追加一条字段错误
func (e *Error) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Merge copies all messages of other into e.
func (e *Error) Merge(other *Error) {
	if other == nil {
		return
	}
	for field, messages := range other.Fields {
		for _, message := range messages {
			e.Add(field, message)
		}
	}
}

// Empty 是否没有任何错误
func (e *Error) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Err returns nil when no message was collected, so callers can
// `return verr.Err()` at the end of a validation block.
func (e *Error) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *Error) Error() string {
	if e.Empty() {
		return ErrInvalid.Error()
	}
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], ", ")))
	}
	return fmt.Sprintf("%s: %s", ErrInvalid.Error(), strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

// First returns the first message of field, or "".
func (e *Error) First(field string) string {
	if e == nil || len(e.Fields[field]) == 0 {
		return ""
	}
	return e.Fields[field][0]
}

// As extracts a *Error from err.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator 返回共享的 validator 实例，注册了 absurl 和 date 规则。
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("absurl", validateAbsoluteURL)
		_ = v.RegisterValidation("date", validateDate)
		instance = v
	})
	return instance
}

// Struct 校验结构体，失败时返回 *Error。
func Struct(input interface{}) error {
	err := Validator().Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("validate input: %w", err)
	}

	verr := New()
	for _, fe := range fieldErrors {
		verr.Add(fieldPath(fe.Namespace()), message(fe))
	}
	return verr
}

// IsAbsoluteURL reports whether raw is an http(s) URL with a host.
func IsAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

// ParseDate 解析 YYYY-MM-DD 格式的日期
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(raw))
}

func validateAbsoluteURL(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return IsAbsoluteURL(value)
}

func validateDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := ParseDate(value)
	return err == nil
}

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

// "ExperienceInput.tags[0]" -> "tags.0"
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		namespace = namespace[idx+1:]
	}
	return indexPattern.ReplaceAllString(namespace, ".$1")
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "required_without", "required_if":
		return "is required"
	case "max":
		if isString {
			return fmt.Sprintf("may not be greater than %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("may not have more than %s items", fe.Param())
		}
		return fmt.Sprintf("may not be greater than %s", fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "absurl", "url":
		return "must be a valid URL"
	case "date":
		return "must be a valid date (YYYY-MM-DD)"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("is invalid (%s)", fe.Tag())
	}
}
