package api

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

const (
	EmailMaxLength    = 180
	NameMaxLength     = 120
	PasswordMinLength = 6
	// bcrypt ignores everything past 72 bytes.
	PasswordMaxLength = 72
)

// Validator collects the first failure per field.
type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// Check records msg under key when cond is false, unless key already failed.
func (v *Validator) Check(cond bool, key, msg string) {
	if cond {
		return
	}
	if _, ok := v.Errors[key]; !ok {
		v.Errors[key] = msg
	}
}

func (v *Validator) CheckEmail(email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(utf8.RuneCountInString(email) <= EmailMaxLength, "email", fmt.Sprintf("must be at most %d characters long", EmailMaxLength))
	v.Check(emailRegexp.MatchString(email), "email", "must be a valid email address")
}

func (v *Validator) CheckPassword(password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) >= PasswordMinLength, "password", fmt.Sprintf("must be at least %d characters long", PasswordMinLength))
	v.Check(len(password) <= PasswordMaxLength, "password", fmt.Sprintf("must be at most %d bytes long", PasswordMaxLength))
}

func (v *Validator) CheckName(name *string) {
	if name == nil {
		return
	}
	v.Check(utf8.RuneCountInString(*name) <= NameMaxLength, "name", fmt.Sprintf("must be at most %d characters long", NameMaxLength))
}

// CheckTitle expects an already trimmed title.
func (v *Validator) CheckTitle(title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(utf8.RuneCountInString(title) <= types.TaskTitleMaxLength, "title", fmt.Sprintf("must be at most %d characters long", types.TaskTitleMaxLength))
}

func (v *Validator) CheckDescription(description *string) {
	if description == nil {
		return
	}
	v.Check(utf8.RuneCountInString(*description) <= types.TaskDescriptionMaxLength, "description", fmt.Sprintf("must be at most %d characters long", types.TaskDescriptionMaxLength))
}

func (v *Validator) CheckStatus(status *types.TaskStatus) {
	if status == nil {
		return
	}
	v.Check(status.Valid(), "status", "must be one of pending, in_progress, completed")
}

// Err folds the collected failures into one ErrInvalidArgument, fields in
// alphabetical order, or returns nil.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	keys := make([]string, 0, len(v.Errors))
	for k := range v.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+v.Errors[k])
	}
	return fmt.Errorf("%w: %s", types.ErrInvalidArgument, strings.Join(parts, "; "))
}
