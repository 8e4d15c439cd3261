package cli

import (
	"errors"
	"fmt"
)

var errDoctorIssuesFound = errors.New("doctor found errors")

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}
