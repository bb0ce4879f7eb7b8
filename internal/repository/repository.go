package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/talentdesk/ats-service/internal/domain"
)

// ErrNotFound is returned when no row matches the lookup.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint would be violated.
var ErrDuplicate = errors.New("duplicate")

// ApplicationFilter narrows application listings. Nil fields do not constrain.
type ApplicationFilter struct {
	JobID  *int64
	Status *domain.ApplicationStatus
}

func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// likePattern escapes LIKE metacharacters so the term matches literally.
func likePattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.ToLower(term)) + "%"
}
