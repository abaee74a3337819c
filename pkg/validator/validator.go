package validator

import (
	"context"
	"regexp"
)

type Validate interface {
	Validate(ctx context.Context) (problems map[string][]string)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}
