package out

import (
	"context"

	"portfolio_server/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByLogin matches on username or email; either may be empty.
	FindByLogin(ctx context.Context, username, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// ExistsOther reports whether a user other than excludeID holds any of the
	// identifiers. excludeID may be empty to match every user.
	ExistsOther(ctx context.Context, excludeID, username, email, mobile string) (bool, error)

	SetRefreshToken(ctx context.Context, id, token string) error
	ClearRefreshToken(ctx context.Context, id string) error
	SetPassword(ctx context.Context, id, passwordHash string) error

	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
	SetAvatar(ctx context.Context, id, fileName string) (*domain.User, error)
	SetCoverImage(ctx context.Context, id, fileName string) (*domain.User, error)

	SetEducation(ctx context.Context, id string, items []domain.Education) (*domain.User, error)
	PushExperience(ctx context.Context, id string, item domain.Experience) (*domain.User, error)
	// UpdateExperience replaces the matching nested item in place; returns the
	// number of matched items (0 means silent no-op).
	UpdateExperience(ctx context.Context, id, experienceID string, item domain.Experience) (int64, error)
	PullExperience(ctx context.Context, id, experienceID string) (int64, error)
	FindExperience(ctx context.Context, id, experienceID string) (*domain.Experience, error)

	// Summaries resolves user ids to owner summaries for project reads.
	Summaries(ctx context.Context, ids []string) (map[string]domain.OwnerSummary, error)
}
