// Package user implements the user directory: registration, sessions,
// profile maintenance and the nested education/experience collections.
package user

import (
	"context"
	"strings"

	"portfolio_server/core/domain"
	"portfolio_server/core/port/out"
	"portfolio_server/core/service/auth"
	"portfolio_server/pkg/apperr"
	"portfolio_server/pkg/crypto"

	"github.com/google/uuid"
)

// Service implements the user directory over the document store, blob store
// and token service.
type Service struct {
	users  out.UserRepository
	files  out.FileStore
	tokens *auth.TokenService
}

// NewService creates a user directory service.
func NewService(users out.UserRepository, files out.FileStore, tokens *auth.TokenService) *Service {
	return &Service{
		users:  users,
		files:  files,
		tokens: tokens,
	}
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a user after uniqueness checks on username, email and
// mobile. The username is stored lower-cased and the password hashed.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	fields := []string{in.FullName, in.Email, in.Mobile, in.Username, in.Password}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return nil, apperr.ValidationFailed("All fields are required")
		}
	}

	exists, err := s.users.ExistsOther(ctx, "", in.Username, in.Email, in.Mobile)
	if err != nil {
		return nil, apperr.DatabaseError("check existing user", err)
	}
	if exists {
		return nil, apperr.Conflict("User with same email or username or mobile already exists")
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal("failed to hash password").WithError(err)
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Username: strings.ToLower(in.Username),
		Email:    in.Email,
		Mobile:   in.Mobile,
		FullName: in.FullName,
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperr.DatabaseError("create user", err)
	}
	return user.Sanitized(), nil
}

// LoginInput identifies a user by username or email.
type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the sanitized user plus the freshly rotated pair.
type LoginResult struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// Login verifies credentials and rotates the session token pair. The stored
// refresh token is overwritten, so any earlier session's refresh token stops
// working.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if in.Username == "" && in.Email == "" {
		return nil, apperr.ValidationFailed("username or email is required")
	}

	found, err := s.users.FindByLogin(ctx, strings.ToLower(in.Username), in.Email)
	if err != nil {
		return nil, apperr.DatabaseError("find user", err)
	}
	if found == nil {
		return nil, apperr.NotFound("User does not exist")
	}
	if !crypto.VerifyPassword(in.Password, found.Password) {
		return nil, apperr.Unauthorized("Invalid user credentials")
	}

	pair, err := s.tokens.Rotate(ctx, found)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		User:         found.Sanitized(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout clears the stored refresh token, invalidating the session's refresh
// path.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.users.ClearRefreshToken(ctx, userID); err != nil {
		return apperr.DatabaseError("clear refresh token", err)
	}
	return nil
}

// Refresh validates an incoming refresh token against the value stored on the
// user and rotates the pair. A superseded token is rejected, which is how
// replay of an already-rotated token surfaces.
func (s *Service) Refresh(ctx context.Context, incomingToken string) (*auth.TokenPair, error) {
	if incomingToken == "" {
		return nil, apperr.Unauthorized("unauthorized request")
	}

	claims, err := s.tokens.VerifyRefreshToken(incomingToken)
	if err != nil {
		// Verification failures surface directly, not wrapped.
		return nil, err
	}

	found, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperr.DatabaseError("find user", err)
	}
	if found == nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}
	if found.RefreshToken != incomingToken {
		return nil, apperr.Unauthorized("Refresh token is expired or used")
	}

	return s.tokens.Rotate(ctx, found)
}

// ChangePassword verifies the old password and stores the hash of the new
// one.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	found, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperr.DatabaseError("find user", err)
	}
	if found == nil {
		return apperr.NotFound("User does not exist")
	}
	if !crypto.VerifyPassword(oldPassword, found.Password) {
		return apperr.ValidationFailed("Invalid old password")
	}
	if strings.TrimSpace(newPassword) == "" {
		return apperr.ValidationFailed("New password is required")
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal("failed to hash password").WithError(err)
	}
	if err := s.users.SetPassword(ctx, userID, hash); err != nil {
		return apperr.DatabaseError("set password", err)
	}
	return nil
}

// GetCurrent returns the sanitized user for an id already resolved by the
// session guard.
func (s *Service) GetCurrent(ctx context.Context, userID string) (*domain.User, error) {
	found, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.DatabaseError("find user", err)
	}
	if found == nil {
		return nil, apperr.NotFound("User does not exist")
	}
	return found.Sanitized(), nil
}

// UpdateProfile applies a full replacement of the mutable profile fields
// after re-checking identifier uniqueness against other users.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	if update.FullName == "" {
		return nil, apperr.MissingField("Full Name")
	}
	if update.Email == "" {
		return nil, apperr.MissingField("Email")
	}
	if update.Mobile == "" {
		return nil, apperr.MissingField("Mobile")
	}
	if update.Username == "" {
		return nil, apperr.MissingField("UserName")
	}
	if update.Profession == "" {
		return nil, apperr.MissingField("Profession")
	}

	update.Username = strings.ToLower(update.Username)
	exists, err := s.users.ExistsOther(ctx, userID, update.Username, update.Email, update.Mobile)
	if err != nil {
		return nil, apperr.DatabaseError("check existing user", err)
	}
	if exists {
		return nil, apperr.Conflict("User with same email or username or mobile already exists")
	}

	updated, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, apperr.DatabaseError("update profile", err)
	}
	if updated == nil {
		return nil, apperr.NotFound("User does not exist")
	}
	return updated.Sanitized(), nil
}

// UpdateAvatar persists the new avatar reference first, then removes the
// stale blob. A crash between the steps leaves at worst an orphaned file,
// never a dangling reference.
func (s *Service) UpdateAvatar(ctx context.Context, userID, storedName string) (*domain.User, error) {
	if storedName == "" {
		return nil, apperr.ValidationFailed("Avatar file is missing")
	}

	found, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.DatabaseError("find user", err)
	}
	if found == nil {
		return nil, apperr.NotFound("User does not exist")
	}

	updated, err := s.users.SetAvatar(ctx, userID, storedName)
	if err != nil {
		return nil, apperr.DatabaseError("set avatar", err)
	}
	if found.Avatar != "" && found.Avatar != storedName {
		_ = s.files.Remove(out.CategoryUserImage, found.Avatar)
	}
	return updated.Sanitized(), nil
}

// UpdateCoverImage mirrors UpdateAvatar for the profile cover image.
func (s *Service) UpdateCoverImage(ctx context.Context, userID, storedName string) (*domain.User, error) {
	if storedName == "" {
		return nil, apperr.ValidationFailed("Cover image file is missing")
	}

	found, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.DatabaseError("find user", err)
	}
	if found == nil {
		return nil, apperr.NotFound("User does not exist")
	}

	updated, err := s.users.SetCoverImage(ctx, userID, storedName)
	if err != nil {
		return nil, apperr.DatabaseError("set cover image", err)
	}
	if found.CoverImage != "" && found.CoverImage != storedName {
		_ = s.files.Remove(out.CategoryUserImage, found.CoverImage)
	}
	return updated.Sanitized(), nil
}

// SetEducation replaces the whole education list. Items without an id get a
// generated one so later per-item operations stay order-independent.
func (s *Service) SetEducation(ctx context.Context, userID string, items []domain.Education) (*domain.User, error) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
	}
	updated, err := s.users.SetEducation(ctx, userID, items)
	if err != nil {
		return nil, apperr.DatabaseError("set education", err)
	}
	if updated == nil {
		return nil, apperr.Internal("Something went wrong while adding Education detail")
	}
	return updated.Sanitized(), nil
}

// GetExperience returns the single matching nested item, or an empty list
// when nothing matches.
func (s *Service) GetExperience(ctx context.Context, userID, experienceID string) ([]domain.Experience, error) {
	if userID == "" {
		return nil, apperr.ValidationFailed("User Id is required")
	}
	if experienceID == "" {
		return nil, apperr.ValidationFailed("Experience Id is required")
	}

	item, err := s.users.FindExperience(ctx, userID, experienceID)
	if err != nil {
		return nil, apperr.DatabaseError("find experience", err)
	}
	if item == nil {
		return []domain.Experience{}, nil
	}
	return []domain.Experience{*item}, nil
}

func validateExperience(item domain.Experience) error {
	if item.Title == "" || item.Designation == "" || item.CompanyName == "" ||
		item.CompanyLocation == "" || item.StartOn.IsZero() {
		return apperr.ValidationFailed("All fields are required")
	}
	return nil
}

// AddExperience appends an item to the experience list.
func (s *Service) AddExperience(ctx context.Context, userID string, item domain.Experience) (*domain.User, error) {
	if err := validateExperience(item); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, apperr.ValidationFailed("User Id is required")
	}
	item.ID = uuid.NewString()

	updated, err := s.users.PushExperience(ctx, userID, item)
	if err != nil {
		return nil, apperr.DatabaseError("push experience", err)
	}
	if updated == nil {
		return nil, apperr.NotFound("User does not exist")
	}
	return updated.Sanitized(), nil
}

// UpdateExperience replaces the matching nested item in place by id. When no
// item matches the update is a silent no-op.
func (s *Service) UpdateExperience(ctx context.Context, userID, experienceID string, item domain.Experience) (int64, error) {
	if err := validateExperience(item); err != nil {
		return 0, err
	}
	if userID == "" {
		return 0, apperr.ValidationFailed("User Id is required")
	}
	item.ID = experienceID

	matched, err := s.users.UpdateExperience(ctx, userID, experienceID, item)
	if err != nil {
		return 0, apperr.DatabaseError("update experience", err)
	}
	return matched, nil
}

// RemoveExperience removes the matching nested item.
func (s *Service) RemoveExperience(ctx context.Context, userID, experienceID string) (int64, error) {
	if experienceID == "" {
		return 0, apperr.ValidationFailed("Experience Id is required")
	}

	removed, err := s.users.PullExperience(ctx, userID, experienceID)
	if err != nil {
		return 0, apperr.DatabaseError("pull experience", err)
	}
	return removed, nil
}

// GetPublicProfile looks up a sanitized user by username.
func (s *Service) GetPublicProfile(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, apperr.ValidationFailed("UserName is required")
	}
	found, err := s.users.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, apperr.DatabaseError("find user", err)
	}
	if found == nil {
		return nil, apperr.NotFound("No User Found! Invalid username")
	}
	return found.Sanitized(), nil
}

// Summaries exposes the owner-summary read interface consumed by the project
// registry join.
func (s *Service) Summaries(ctx context.Context, ids []string) (map[string]domain.OwnerSummary, error) {
	return s.users.Summaries(ctx, ids)
}
