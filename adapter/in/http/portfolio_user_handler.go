package http

import (
	"portfolio_server/core/domain"
	"portfolio_server/core/port/out"
	"portfolio_server/core/service/user"
	"portfolio_server/infra/middleware"
	"portfolio_server/pkg/apperr"
	"portfolio_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the users API surface.
type UserHandler struct {
	users *user.Service
	files out.FileStore
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *user.Service, files out.FileStore) *UserHandler {
	return &UserHandler{users: users, files: files}
}

// Register wires the user routes. guard is the session guard applied to the
// protected subset.
func (h *UserHandler) Register(api fiber.Router, guard fiber.Handler) {
	users := api.Group("/users")

	users.Post("/register", h.RegisterUser)
	users.Post("/login", h.Login)
	users.Post("/refresh-token", h.RefreshToken)
	users.Get("/profile", h.PublicProfile)

	users.Post("/logout", guard, h.Logout)
	users.Post("/change-password", guard, h.ChangePassword)
	users.Get("/current", guard, h.CurrentUser)
	users.Patch("/account", guard, h.UpdateAccount)
	users.Patch("/avatar", guard, h.UpdateAvatar)
	users.Patch("/cover-image", guard, h.UpdateCoverImage)
	users.Put("/education", guard, h.UpdateEducation)
	users.Get("/experience", guard, h.GetExperience)
	users.Post("/experience", guard, h.AddExperience)
	users.Patch("/experience", guard, h.UpdateExperience)
	users.Delete("/experience", guard, h.DeleteExperience)
}

// RegisterUser creates a new account.
// POST /users/register
func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	var in user.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	created, err := h.users.Register(c.Context(), in)
	if err != nil {
		return err
	}
	return response.Created(c, created, "User registered Successfully")
}

// Login authenticates by username or email and opens a session.
// POST /users/login
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var in user.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	result, err := h.users.Login(c.Context(), in)
	if err != nil {
		return err
	}

	setSessionCookies(c, result.AccessToken, result.RefreshToken)
	return response.OK(c, result, "User logged In Successfully")
}

// Logout closes the session.
// POST /users/logout
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return apperr.Unauthorized("")
	}

	if err := h.users.Logout(c.Context(), userID); err != nil {
		return err
	}
	clearSessionCookies(c)
	return response.OK(c, fiber.Map{}, "User logged Out")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken rotates the session token pair.
// POST /users/refresh-token
func (h *UserHandler) RefreshToken(c *fiber.Ctx) error {
	tokenString := c.Cookies(cookieRefreshToken)
	if tokenString == "" {
		var req refreshRequest
		if err := c.BodyParser(&req); err == nil {
			tokenString = req.RefreshToken
		}
	}

	pair, err := h.users.Refresh(c.Context(), tokenString)
	if err != nil {
		return err
	}

	setSessionCookies(c, pair.AccessToken, pair.RefreshToken)
	return response.OK(c, pair, "Access token refreshed")
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword replaces the caller's password.
// POST /users/change-password
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return apperr.Unauthorized("")
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	if err := h.users.ChangePassword(c.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return response.OK(c, fiber.Map{}, "Password changed successfully")
}

// CurrentUser returns the identity resolved by the session guard.
// GET /users/current
func (h *UserHandler) CurrentUser(c *fiber.Ctx) error {
	sessionUser, ok := middleware.SessionUser(c)
	if !ok {
		return apperr.Unauthorized("")
	}
	return response.OK(c, sessionUser, "User fetched successfully")
}

// UpdateAccount replaces the mutable profile fields.
// PATCH /users/account
func (h *UserHandler) UpdateAccount(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return apperr.Unauthorized("")
	}

	var update domain.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	updated, err := h.users.UpdateProfile(c.Context(), userID, update)
	if err != nil {
		return err
	}
	return response.OK(c, updated, "Account details updated successfully")
}

// updateImage is the shared avatar / cover-image upload path.
func (h *UserHandler) updateImage(
	c *fiber.Ctx,
	field, missingMessage, successMessage string,
	apply func(c *fiber.Ctx, userID, storedName string) (*domain.User, error),
) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return apperr.Unauthorized("")
	}

	fileHeader, err := c.FormFile(field)
	if err != nil {
		return apperr.ValidationFailed(missingMessage)
	}

	storedName, err := h.files.Save(out.CategoryUserImage, fileHeader)
	if err != nil {
		return apperr.Internal("failed to store uploaded file").WithError(err)
	}

	updated, err := apply(c, userID, storedName)
	if err != nil {
		_ = h.files.Remove(out.CategoryUserImage, storedName)
		return err
	}
	return response.OK(c, updated, successMessage)
}

// UpdateAvatar replaces the profile avatar.
// PATCH /users/avatar
func (h *UserHandler) UpdateAvatar(c *fiber.Ctx) error {
	return h.updateImage(c, "avatar", "Avatar file is missing", "Avatar image updated successfully",
		func(c *fiber.Ctx, userID, storedName string) (*domain.User, error) {
			return h.users.UpdateAvatar(c.Context(), userID, storedName)
		})
}

// UpdateCoverImage replaces the profile cover image.
// PATCH /users/cover-image
func (h *UserHandler) UpdateCoverImage(c *fiber.Ctx) error {
	return h.updateImage(c, "coverImage", "Cover image file is missing", "Cover image updated successfully",
		func(c *fiber.Ctx, userID, storedName string) (*domain.User, error) {
			return h.users.UpdateCoverImage(c.Context(), userID, storedName)
		})
}

// UpdateEducation replaces the whole education list.
// PUT /users/education
func (h *UserHandler) UpdateEducation(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return apperr.Unauthorized("")
	}

	var items []domain.Education
	if err := c.BodyParser(&items); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	updated, err := h.users.SetEducation(c.Context(), userID, items)
	if err != nil {
		return err
	}
	return response.OK(c, updated, "Education Detail Added Successfully")
}

// GetExperience fetches a single experience item by id.
// GET /users/experience?Id=
func (h *UserHandler) GetExperience(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return apperr.Unauthorized("")
	}

	items, err := h.users.GetExperience(c.Context(), userID, c.Query("Id"))
	if err != nil {
		return err
	}
	return response.OK(c, items, "Experience List Fetch Successfully")
}

// AddExperience appends an experience item.
// POST /users/experience
func (h *UserHandler) AddExperience(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return apperr.Unauthorized("")
	}

	var item domain.Experience
	if err := c.BodyParser(&item); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	updated, err := h.users.AddExperience(c.Context(), userID, item)
	if err != nil {
		return err
	}
	return response.Created(c, updated, "Experience Added Successfully")
}

type experienceUpdateRequest struct {
	ID string `json:"Id"`
	domain.Experience
}

// UpdateExperience replaces an experience item in place by id.
// PATCH /users/experience
func (h *UserHandler) UpdateExperience(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return apperr.Unauthorized("")
	}

	var req experienceUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	matched, err := h.users.UpdateExperience(c.Context(), userID, req.ID, req.Experience)
	if err != nil {
		return err
	}
	return response.OK(c, fiber.Map{"matchedCount": matched}, "Experience Updated Successfully")
}

// DeleteExperience removes an experience item by id.
// DELETE /users/experience?Id=
func (h *UserHandler) DeleteExperience(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return apperr.Unauthorized("")
	}

	removed, err := h.users.RemoveExperience(c.Context(), userID, c.Query("Id"))
	if err != nil {
		return err
	}
	return response.OK(c, fiber.Map{"modifiedCount": removed}, "Experience Deleted Successfully")
}

// PublicProfile looks up a user's public profile by username.
// GET /users/profile?username=
func (h *UserHandler) PublicProfile(c *fiber.Ctx) error {
	profile, err := h.users.GetPublicProfile(c.Context(), c.Query("username"))
	if err != nil {
		return err
	}
	return response.OK(c, profile, "User profile fetched successfully")
}
