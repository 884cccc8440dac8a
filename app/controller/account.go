package controller

import (
	"errors"
	"net/http"
	"strconv"

	httpdto "github.com/tourcolombia/booking/app/dto/http"
	"github.com/tourcolombia/booking/app/entity"
	"github.com/tourcolombia/booking/app/service"
	"github.com/tourcolombia/booking/config"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AccountController struct {
	accountService *service.AccountService
	resetService   *service.ResetService
	cfg            *config.Config
}

func NewAccountController(
	accountService *service.AccountService,
	resetService *service.ResetService,
	cfg *config.Config,
) *AccountController {
	return &AccountController{
		accountService: accountService,
		resetService:   resetService,
		cfg:            cfg,
	}
}

func (c *AccountController) Register(ctx echo.Context) error {
	var req httpdto.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind register request")
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid request body"))
	}

	if req.Name == "" || req.Surname == "" || req.NationalID == "" || req.Email == "" || req.Password == "" {
		logrus.Debug("Register validation failed: missing fields")
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("all fields are required"))
	}

	logrus.WithField("email", req.Email).Info("Register request received")
	user, err := c.accountService.Register(ctx.Request().Context(), req.Name, req.Surname, req.NationalID, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			logrus.WithField("email", req.Email).Warn("Register failed: invalid email format")
			return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid email format"))
		}
		if errors.Is(err, service.ErrWeakPassword) {
			logrus.WithField("email", req.Email).Warn("Register failed: weak password")
			return ctx.JSON(http.StatusBadRequest, httpdto.Fail(err.Error()))
		}
		if errors.Is(err, service.ErrEmailExists) {
			logrus.WithField("email", req.Email).Warn("Register failed: email already registered")
			return ctx.JSON(http.StatusConflict, httpdto.Fail("email is already registered"))
		}
		if errors.Is(err, service.ErrNationalIDExists) {
			logrus.WithField("email", req.Email).Warn("Register failed: national id already registered")
			return ctx.JSON(http.StatusConflict, httpdto.Fail("national id is already registered"))
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Register failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Fail("internal server error"))
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	return ctx.JSON(http.StatusCreated, httpdto.OK("user registered successfully", httpdto.UserData{
		UserID:  user.ID,
		Name:    user.FirstName,
		Surname: user.LastName,
		Email:   user.Email,
	}))
}

func (c *AccountController) Login(ctx echo.Context) error {
	var req httpdto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind login request")
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("email and password are required"))
	}

	logrus.WithField("email", req.Email).Info("Login request received")
	result, err := c.accountService.Authenticate(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logrus.WithField("email", req.Email).Warn("Login failed: invalid credentials")
			return ctx.JSON(http.StatusUnauthorized, httpdto.Fail("incorrect email or password"))
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Login failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Fail("internal server error"))
	}

	logrus.WithField("user_id", result.User.ID).Info("Login successful")
	return ctx.JSON(http.StatusOK, httpdto.OK("login successful", httpdto.LoginData{
		UserID:      result.User.ID,
		Name:        result.User.FirstName,
		Surname:     result.User.LastName,
		NationalID:  result.User.NationalID,
		Email:       result.User.Email,
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
	}))
}

func (c *AccountController) GetProfile(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid user id"))
	}

	user, err := c.accountService.GetProfile(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.Fail("user not found"))
		}
		logrus.WithError(err).WithField("user_id", id).Error("Get profile failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Fail("internal server error"))
	}

	return ctx.JSON(http.StatusOK, httpdto.OK("user found", profileData(user)))
}

// Me resolves the profile of the bearer-token owner.
func (c *AccountController) Me(ctx echo.Context) error {
	userID, ok := ctx.Get("user_id").(uint64)
	if !ok {
		logrus.Warn("Me failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, httpdto.Fail("unauthorized"))
	}

	user, err := c.accountService.GetProfile(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.Fail("user not found"))
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Me failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Fail("internal server error"))
	}

	return ctx.JSON(http.StatusOK, httpdto.OK("user found", profileData(user)))
}

func (c *AccountController) UpdateProfile(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid user id"))
	}

	var req httpdto.UpdateProfileRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind update profile request")
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid request body"))
	}

	if req.Name == "" || req.Surname == "" || req.NationalID == "" || req.Email == "" {
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("all fields are required"))
	}

	logrus.WithField("user_id", id).Info("Update profile request received")
	user, err := c.accountService.UpdateProfile(ctx.Request().Context(), id, req.Name, req.Surname, req.NationalID, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid email format"))
		}
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.Fail("user not found"))
		}
		if errors.Is(err, service.ErrEmailExists) {
			return ctx.JSON(http.StatusConflict, httpdto.Fail("email is already in use by another user"))
		}
		if errors.Is(err, service.ErrNationalIDExists) {
			return ctx.JSON(http.StatusConflict, httpdto.Fail("national id is already in use by another user"))
		}
		logrus.WithError(err).WithField("user_id", id).Error("Update profile failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Fail("internal server error"))
	}

	logrus.WithField("user_id", id).Info("Profile updated")
	return ctx.JSON(http.StatusOK, httpdto.OK("user updated successfully", httpdto.UpdatedProfileData{
		UserID:     user.ID,
		Name:       user.FirstName,
		Surname:    user.LastName,
		NationalID: user.NationalID,
		Email:      user.Email,
	}))
}

func (c *AccountController) DeleteAccount(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid user id"))
	}

	logrus.WithField("user_id", id).Info("Delete account request received")
	if err := c.accountService.DeleteAccount(ctx.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.Fail("user not found"))
		}
		logrus.WithError(err).WithField("user_id", id).Error("Delete account failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Fail("internal server error"))
	}

	logrus.WithField("user_id", id).Info("Account deleted")
	return ctx.JSON(http.StatusOK, httpdto.OK("account deleted successfully", nil))
}

const resetRequestMessage = "if the email exists, a reset link has been sent"

func (c *AccountController) RequestReset(ctx echo.Context) error {
	var req httpdto.ResetRequestRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind reset request")
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid request body"))
	}

	if req.Email == "" {
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("email is required"))
	}

	logrus.WithField("email", req.Email).Info("Password reset requested")
	result, err := c.resetService.RequestReset(ctx.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Same envelope as the success path so account existence
			// cannot be probed.
			logrus.WithField("email", req.Email).Debug("Password reset requested for unknown email")
			return ctx.JSON(http.StatusOK, httpdto.OK(resetRequestMessage, nil))
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Request password reset failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Fail("internal server error"))
	}

	logrus.WithField("email", req.Email).Info("Password reset token generated")
	if c.cfg.IsProduction() {
		return ctx.JSON(http.StatusOK, httpdto.OK(resetRequestMessage, nil))
	}

	// Outside production the raw token is echoed back for testability.
	return ctx.JSON(http.StatusOK, httpdto.OK(resetRequestMessage, httpdto.ResetRequestData{
		ResetToken: result.Token,
	}))
}

func (c *AccountController) ConfirmReset(ctx echo.Context) error {
	var req httpdto.ResetConfirmRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind reset confirm request")
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid request body"))
	}

	if req.Token == "" || req.NewPassword == "" {
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("token and newPassword are required"))
	}

	logrus.Info("Reset password request received")
	if err := c.resetService.ConsumeReset(ctx.Request().Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWeakPassword) {
			logrus.Warn("Reset password failed: weak password")
			return ctx.JSON(http.StatusBadRequest, httpdto.Fail(err.Error()))
		}
		if errors.Is(err, service.ErrInvalidResetToken) {
			logrus.Warn("Reset password failed: invalid token")
			return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid token"))
		}
		if errors.Is(err, service.ErrResetTokenUsed) {
			logrus.Warn("Reset password failed: token already used")
			return ctx.JSON(http.StatusBadRequest, httpdto.Fail("token has already been used"))
		}
		if errors.Is(err, service.ErrResetTokenExpired) {
			logrus.Warn("Reset password failed: token expired")
			return ctx.JSON(http.StatusBadRequest, httpdto.Fail("token has expired"))
		}
		logrus.WithError(err).Error("Reset password failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Fail("internal server error"))
	}

	logrus.Info("Password reset successful")
	return ctx.JSON(http.StatusOK, httpdto.OK("password reset successfully", nil))
}

func profileData(user *entity.User) httpdto.ProfileData {
	return httpdto.ProfileData{
		UserID:     user.ID,
		Name:       user.FirstName,
		Surname:    user.LastName,
		NationalID: user.NationalID,
		Email:      user.Email,
		CreatedAt:  user.CreatedAt,
	}
}

func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(ctx.Param(name), 10, 64)
}
