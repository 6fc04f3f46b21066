package cli

import (
	"fmt"
	"strconv"
	"strings"
)

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

type badArgError struct {
	name  string
	value string
}

func (e badArgError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.name, e.value)
}

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, badArgError{name: "task id", value: s}
	}
	return id, nil
}
