// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"nuovo/internal/delivery/http/middleware"
	"nuovo/internal/delivery/http/response"
	"nuovo/internal/domain/entity"
	"nuovo/internal/domain/service"
	"nuovo/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account, auth and admin handlers.
type UserHandler struct {
	store     *store.Store
	tokenSvc  service.TokenService
	blacklist service.TokenBlacklist
	mailer    service.Mailer
	logger    *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(st *store.Store, tokenSvc service.TokenService, blacklist service.TokenBlacklist, mailer service.Mailer, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		store:     st,
		tokenSvc:  tokenSvc,
		blacklist: blacklist,
		mailer:    mailer,
		logger:    logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

type accountResponse struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

func accountOf(user *entity.User) accountResponse {
	return accountResponse{
		UserID:  user.UserID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
}

// Register handles the account registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	user, err := h.store.Register(c.Request().Context(), input.Name, input.Email, input.Password, input.IsAdmin)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, accountOf(user), "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  accountResponse `json:"user"`
}

// Login handles the login request and issues an access token.
func (h *UserHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	user, err := h.store.Authenticate(c.Request().Context(), input.Email, input.Password)
	if err != nil {
		return errors.WithStack(err)
	}

	token, err := h.tokenSvc.Generate(user.Email, user.IsAdmin)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginResponse{
		Token: token,
		User:  accountOf(user),
	}, "Login successful")
}

// Logout revokes the caller's token and marks the account logged out.
func (h *UserHandler) Logout(c echo.Context) error {
	h.blacklist.Revoke(middleware.CallerToken(c))

	if err := h.store.Logout(c.Request().Context(), middleware.CallerEmail(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Successfully logged out")
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword emails the stored password back to the account owner.
// Passwords are plaintext in the dataset, so the recovery mail can spell the
// password out the way the legacy system did.
func (h *UserHandler) ForgotPassword(c echo.Context) error {
	var input forgotPasswordRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	user, err := h.store.User(input.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	body := "Your password is: " + user.Password
	if err := h.mailer.Send(c.Request().Context(), user.Email, "Password Recovery", body); err != nil {
		h.logger.Error("failed to send password recovery mail",
			slog.String("email", user.Email), slog.Any("error", err))

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password sent to your email")
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ChangePassword replaces the caller's password.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var input changePasswordRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	err := h.store.ChangePassword(c.Request().Context(), middleware.CallerEmail(c), input.OldPassword, input.NewPassword)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

type profileResponse struct {
	UserID                string                `json:"user_id"`
	Name                  string                `json:"name"`
	Email                 string                `json:"email"`
	IsAdmin               bool                  `json:"is_admin"`
	FollowedBrand         []string              `json:"followed_brand"`
	WishList              []string              `json:"wish_list"`
	FollowedSubcategories []string              `json:"followed_subcategories"`
	Notifications         []entity.Notification `json:"notifications"`
}

// GetProfile returns the caller's profile, password excluded.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.store.User(middleware.CallerEmail(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profileResponse{
		UserID:                user.UserID,
		Name:                  user.Name,
		Email:                 user.Email,
		IsAdmin:               user.IsAdmin,
		FollowedBrand:         user.FollowedBrand,
		WishList:              user.WishList,
		FollowedSubcategories: user.FollowedSubcategories,
		Notifications:         user.Notifications,
	}, "")
}

type editProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

// EditProfile updates the caller's name and/or email.
func (h *UserHandler) EditProfile(c echo.Context) error {
	var input editProfileRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	user, err := h.store.UpdateProfile(c.Request().Context(), middleware.CallerEmail(c), input.Name, input.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, accountOf(user), "Profile updated successfully")
}

// DeleteAccount removes the caller's own account, including every follow and
// wishlist reference attached to it.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	if err := h.store.DeleteUser(c.Request().Context(), middleware.CallerEmail(c)); err != nil {
		return errors.WithStack(err)
	}
	h.blacklist.Revoke(middleware.CallerToken(c))

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// ListUsers returns the admin account overview.
func (h *UserHandler) ListUsers(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.store.UserSummaries(), "")
}

// AdminDeleteUser removes the account named by the email query parameter.
func (h *UserHandler) AdminDeleteUser(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return response.BindingError(c, "INVALID_INPUT", "Query parameter 'email' is required")
	}

	if err := h.store.DeleteUser(c.Request().Context(), email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// GetMetrics returns the admin leaderboards.
func (h *UserHandler) GetMetrics(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.store.Metrics(), "")
}
