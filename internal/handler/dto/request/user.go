package request

import (
	"strings"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"
)

// UserRequest serves both create and update; on update an omitted field
// keeps its stored value.
type UserRequest struct {
	Email      *string `json:"email" binding:"omitempty,email"`
	ExternalID *int64  `json:"external_id" binding:"omitempty,gt=0"`
}

func (r UserRequest) ToInput() commands.UserInput {
	return commands.UserInput{
		Email:      trimmed(r.Email),
		ExternalID: r.ExternalID,
	}
}

type ListUsersQuery struct {
	ID         *int64 `form:"id" binding:"omitempty,gt=0"`
	Email      string `form:"email"`
	ExternalID *int64 `form:"external_id" binding:"omitempty,gt=0"`
}

func (q ListUsersQuery) ToFilter() queries.UserFilter {
	return queries.UserFilter{
		ID:         q.ID,
		Email:      strings.ToLower(strings.TrimSpace(q.Email)),
		ExternalID: q.ExternalID,
	}
}
