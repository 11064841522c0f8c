package member

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

// Member is a lab member resolved for the current session. A member belongs to
// exactly one lab; every calendar query is scoped by that lab.
type Member struct {
	ID          int
	UID         string
	DisplayName string
	LabID       int
}

type contextKey string

const memberKey contextKey = "member"

var (
	ErrNoMember       = errors.New("no member in context")
	ErrMemberNotFound = errors.New("member not found")
)

// WithMember returns a context carrying the resolved member.
func WithMember(ctx context.Context, m Member) context.Context {
	return context.WithValue(ctx, memberKey, m)
}

// Current retrieves the member from the context. Returns ErrNoMember if the
// request was not resolved by the identity middleware.
func Current(ctx context.Context) (Member, error) {
	m, ok := ctx.Value(memberKey).(Member)
	if !ok {
		log.Trace("member not found in context")
		return Member{}, ErrNoMember
	}
	return m, nil
}

// CurrentID retrieves the current member's id from the context.
func CurrentID(ctx context.Context) (int, error) {
	m, err := Current(ctx)
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

// CurrentLabID retrieves the current member's lab id from the context.
func CurrentLabID(ctx context.Context) (int, error) {
	m, err := Current(ctx)
	if err != nil {
		return 0, err
	}
	return m.LabID, nil
}
