package domain

import (
	"fmt"
)

func WorkflowKey(status WorkflowStatus, id string) string {
	return fmt.Sprintf("workflow:%s:%s", status, id)
}

func WorkflowPrefix(status WorkflowStatus) string {
	return fmt.Sprintf("workflow:%s:", status)
}

func ContentKey(id string) string {
	return fmt.Sprintf("content:%s", id)
}
