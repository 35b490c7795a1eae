package domain

import "strings"

// Account is a console user as listed by the user administration API.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// RoleCounts is the user total with its per-role breakdown.
type RoleCounts struct {
	Total  int64            `json:"totalUsers"`
	ByRole map[string]int64 `json:"roleWiseCount"`
}

// NewAccount is the input for creating a console user.
type NewAccount struct {
	LoginID   string
	PoliceID  string
	Password  string
	Confirm   string
	Role      Role
	PhotoName string
	Photo     []byte
}

const minPasswordLength = 6

func (a NewAccount) Validate() error {
	var errs ValidationErrors
	if len(a.Photo) == 0 {
		errs = append(errs, FieldError{Field: "photo", Message: "photo is required"})
	}
	if strings.TrimSpace(a.LoginID) == "" {
		errs = append(errs, FieldError{Field: "loginId", Message: "login ID is required"})
	}
	if len(a.Password) < minPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}
	if a.Password != a.Confirm {
		errs = append(errs, FieldError{Field: "confirmPassword", Message: "passwords do not match"})
	}
	if !a.Role.Valid() {
		errs = append(errs, FieldError{Field: "role", Message: "role is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
