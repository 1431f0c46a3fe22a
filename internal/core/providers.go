package core

import "context"

// Reply is what the answering service returns for one question.
type Reply struct {
	Answer     string
	Confidence *float64
	Sources    []Source
	FollowUps  []string
}

type SupportAgent interface {
	Ask(ctx context.Context, question string) (Reply, error)
}

// ServiceError is an error-shaped payload from the answering service. Its
// message is safe to show in the transcript.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
