// Package http exposes the JSON API the client talks to.
package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/eventkeeper/eventkeeper/internal/common"
	"github.com/eventkeeper/eventkeeper/internal/logging"
	"github.com/eventkeeper/eventkeeper/internal/server/models"
	"github.com/eventkeeper/eventkeeper/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

// UserService is the slice of the user service the transport needs.
type UserService interface {
	SignUp(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, displayName, photoURL *string) (*models.User, error)
}

// DocumentService reads and writes profile documents.
type DocumentService interface {
	Get(ctx context.Context, userID string) (*models.Document, error)
	Create(ctx context.Context, doc *models.Document) error
	Update(ctx context.Context, userID string, patch models.DocumentPatch) error
}

// StorageService stores and removes uploaded objects.
type StorageService interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Handler carries the services the route handlers delegate to.
type Handler struct {
	users     UserService
	documents DocumentService
	storage   StorageService
	logger    logging.Logger
}

func NewHandler(us UserService, ds DocumentService, ss StorageService, l logging.Logger) *Handler {
	return &Handler{users: us, documents: ds, storage: ss, logger: l.With("module", "http")}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl"`
}

type sessionResponse struct {
	User         userResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, PhotoURL: u.PhotoURL}
}

// Signup creates an account and starts a session in one call.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, http.StatusBadRequest, common.CodeUnknown, "malformed request body")
	}

	user, pair, err := h.users.SignUp(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(sessionResponse{
		User:         toUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Login verifies credentials and returns a token pair.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, http.StatusBadRequest, common.CodeUnknown, "malformed request body")
	}

	user, pair, err := h.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return writeError(c, http.StatusNotFound, common.CodeUserNotFound, "no account for this email")
		}
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(sessionResponse{
		User:         toUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh rotates the refresh token and issues a new pair.
func (h *Handler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, http.StatusBadRequest, common.CodeUnknown, "malformed request body")
	}

	pair, err := h.users.RefreshToken(c.UserContext(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Logout revokes the refresh token. Revoking an already-unknown token
// succeeds, so repeated sign-outs are harmless.
func (h *Handler) Logout(c *fiber.Ctx) error {
	var req refreshRequest
	_ = c.BodyParser(&req)

	if err := h.users.Logout(c.UserContext(), req.RefreshToken); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me returns the identity record for the authenticated user.
func (h *Handler) Me(c *fiber.Ctx) error {
	userID := c.Locals(userIDKey).(string)

	user, err := h.users.GetUser(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return writeError(c, http.StatusUnauthorized, common.CodeInvalidCredential, "account no longer exists")
		}
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toUserResponse(user))
}

type profileUpdateRequest struct {
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoUrl"`
}

// PatchProfile updates the identity-level display name and photo URL.
func (h *Handler) PatchProfile(c *fiber.Ctx) error {
	userID := c.Locals(userIDKey).(string)

	var req profileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, http.StatusBadRequest, common.CodeUnknown, "malformed request body")
	}

	user, err := h.users.UpdateProfile(c.UserContext(), userID, req.DisplayName, req.PhotoURL)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toUserResponse(user))
}

type documentResponse struct {
	Email                    string `json:"email"`
	FirstName                string `json:"firstName"`
	LastName                 string `json:"lastName"`
	Phone                    string `json:"phone"`
	Address                  string `json:"address"`
	ProfileImageURL          string `json:"profileImageUrl"`
	ProfileImagePath         string `json:"profileImagePath"`
	RegistrationStep         int    `json:"registrationStep"`
	HasCompletedRegistration bool   `json:"hasCompletedRegistration"`
	CreatedAt                string `json:"createdAt"`
	UpdatedAt                string `json:"updatedAt"`
}

type newDocumentRequest struct {
	Email                    string `json:"email"`
	RegistrationStep         int    `json:"registrationStep"`
	HasCompletedRegistration bool   `json:"hasCompletedRegistration"`
}

type documentPatchRequest struct {
	Email                    *string `json:"email"`
	FirstName                *string `json:"firstName"`
	LastName                 *string `json:"lastName"`
	Phone                    *string `json:"phone"`
	Address                  *string `json:"address"`
	ProfileImageURL          *string `json:"profileImageUrl"`
	ProfileImagePath         *string `json:"profileImagePath"`
	RegistrationStep         *int    `json:"registrationStep"`
	HasCompletedRegistration *bool   `json:"hasCompletedRegistration"`
}

// requireOwnDocument enforces that users only touch their own document.
func requireOwnDocument(c *fiber.Ctx) (string, error) {
	userID := c.Locals(userIDKey).(string)
	if c.Params("id") != userID {
		return "", writeError(c, http.StatusForbidden, common.CodePermissionDenied, "cannot access another user's document")
	}
	return userID, nil
}

// GetDocument returns the caller's profile document.
func (h *Handler) GetDocument(c *fiber.Ctx) error {
	userID, err := requireOwnDocument(c)
	if err != nil {
		return err
	}

	doc, err := h.documents.Get(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return writeError(c, http.StatusNotFound, common.CodeDocumentNotFound, "document does not exist")
		}
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(documentResponse{
		Email:                    doc.Email,
		FirstName:                doc.FirstName,
		LastName:                 doc.LastName,
		Phone:                    doc.Phone,
		Address:                  doc.Address,
		ProfileImageURL:          doc.ProfileImageURL,
		ProfileImagePath:         doc.ProfileImagePath,
		RegistrationStep:         doc.RegistrationStep,
		HasCompletedRegistration: doc.HasCompletedRegistration,
		CreatedAt:                doc.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		UpdatedAt:                doc.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	})
}

// PutDocument creates the caller's initial onboarding document.
func (h *Handler) PutDocument(c *fiber.Ctx) error {
	userID, err := requireOwnDocument(c)
	if err != nil {
		return err
	}

	var req newDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, http.StatusBadRequest, common.CodeUnknown, "malformed request body")
	}

	doc := &models.Document{
		UserID:                   userID,
		Email:                    req.Email,
		RegistrationStep:         req.RegistrationStep,
		HasCompletedRegistration: req.HasCompletedRegistration,
	}

	if err := h.documents.Create(c.UserContext(), doc); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// PatchDocument applies a partial update to the caller's document.
func (h *Handler) PatchDocument(c *fiber.Ctx) error {
	userID, err := requireOwnDocument(c)
	if err != nil {
		return err
	}

	var req documentPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, http.StatusBadRequest, common.CodeUnknown, "malformed request body")
	}

	patch := models.DocumentPatch{
		Email:                    req.Email,
		FirstName:                req.FirstName,
		LastName:                 req.LastName,
		Phone:                    req.Phone,
		Address:                  req.Address,
		ProfileImageURL:          req.ProfileImageURL,
		ProfileImagePath:         req.ProfileImagePath,
		RegistrationStep:         req.RegistrationStep,
		HasCompletedRegistration: req.HasCompletedRegistration,
	}

	if err := h.documents.Update(c.UserContext(), userID, patch); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return writeError(c, http.StatusNotFound, common.CodeDocumentNotFound, "document does not exist")
		}
		return respondError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// requireOwnObject checks the storage key addresses the caller's namespace.
// Keys follow the "<area>/<user id>/<name>" layout.
func requireOwnObject(c *fiber.Ctx) (string, error) {
	userID := c.Locals(userIDKey).(string)

	key := strings.TrimPrefix(c.Params("*"), "/")
	parts := strings.Split(key, "/")
	if len(parts) < 3 || parts[1] != userID {
		return "", writeError(c, http.StatusForbidden, common.CodePermissionDenied, "cannot access another user's objects")
	}
	return key, nil
}

// PutObject stores the raw request body under the given key and returns the
// public download URL.
func (h *Handler) PutObject(c *fiber.Ctx) error {
	key, err := requireOwnObject(c)
	if err != nil {
		return err
	}

	contentType := c.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.storage.Upload(c.UserContext(), key, c.Body(), contentType)
	if err != nil {
		h.logger.Error(c.UserContext(), "object upload failed", "key", key, "error", err)
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"path":        key,
		"downloadUrl": url,
	})
}

// DeleteObject removes the object under the given key.
func (h *Handler) DeleteObject(c *fiber.Ctx) error {
	key, err := requireOwnObject(c)
	if err != nil {
		return err
	}

	if err := h.storage.Delete(c.UserContext(), key); err != nil {
		h.logger.Error(c.UserContext(), "object delete failed", "key", key, "error", err)
		return respondError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}
