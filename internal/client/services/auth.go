// Package services contains the client's application services: the
// registration/auth orchestration over the backend collaborator, and the
// events feed.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eventkeeper/eventkeeper/internal/client/backend"
	"github.com/eventkeeper/eventkeeper/internal/client/repositories/prefs"
	"github.com/eventkeeper/eventkeeper/internal/client/state"
	"github.com/eventkeeper/eventkeeper/internal/common"
	"github.com/eventkeeper/eventkeeper/internal/filex"
	"github.com/eventkeeper/eventkeeper/internal/logging"
	"github.com/eventkeeper/eventkeeper/internal/netx"
)

// errNoAuthenticatedUser is surfaced verbatim through the error-message
// fallback chain when a profile operation runs without a session.
var errNoAuthenticatedUser = errors.New("No authenticated user found")

// AuthService sequences backend calls for the login/registration flow and
// applies the resulting transitions to the state store.
//
// Every operation follows the same envelope: set the loading flag, run the
// steps, translate any failure into the stored error message, and clear the
// loading flag on every exit path. Operations report success as a bool and
// never propagate errors to the caller; the UI observes the store instead.
//
// Concurrent invocations are not serialized here. Two overlapping calls
// interleave their transitions and the backend's per-document atomicity is
// the only guard; see DESIGN.md.
type AuthService struct {
	store  *state.Store
	client backend.Client
	prefs  prefs.Repository
	log    logging.Logger
}

func NewAuthService(store *state.Store, client backend.Client, prefsRepo prefs.Repository, log logging.Logger) *AuthService {
	return &AuthService{store: store, client: client, prefs: prefsRepo, log: log}
}

// fail records the mapped error message and reports failure.
func (s *AuthService) fail(err error) bool {
	s.store.SetError(ErrorMessage(err))
	return false
}

// CheckAuthState resolves the cached session, if any, and reconciles local
// state against the backend user document. Returns whether a session exists.
func (s *AuthService) CheckAuthState(ctx context.Context) bool {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return s.fail(err)
	}

	if user == nil {
		s.store.SetUser(nil)
		if err := s.prefs.Delete(ctx, prefs.HasCompletedRegistrationKey); err != nil {
			return s.fail(err)
		}
		return false
	}

	s.store.SetUser(toStateUser(user))

	doc, err := s.client.GetDocument(ctx, user.ID)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		// First sign-in on this backend: seed the onboarding document.
		newDoc := backend.NewDocument{
			Email:                    user.Email,
			RegistrationStep:         state.StepImageUpload,
			HasCompletedRegistration: false,
		}
		if err := s.client.CreateDocument(ctx, user.ID, newDoc); err != nil {
			return s.fail(err)
		}
	case err != nil:
		return s.fail(err)
	default:
		if err := s.restoreCompletedRegistration(ctx, user, doc); err != nil {
			return s.fail(err)
		}
	}

	return true
}

// Login authenticates with email/password and restores a completed
// registration from the user document when one exists.
func (s *AuthService) Login(ctx context.Context, email, password string) bool {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)
	s.store.ClearError()

	user, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		return s.fail(err)
	}
	s.store.SetUser(toStateUser(user))

	doc, err := s.client.GetDocument(ctx, user.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return true
		}
		return s.fail(err)
	}
	if err := s.restoreCompletedRegistration(ctx, user, doc); err != nil {
		return s.fail(err)
	}
	return true
}

// Signup creates the account and its initial onboarding document, then
// advances to the image-upload step. Password confirmation is the caller's
// responsibility; this method is never invoked on a mismatch.
func (s *AuthService) Signup(ctx context.Context, email, password string) bool {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)
	s.store.ClearError()

	user, err := s.client.SignUp(ctx, email, password)
	if err != nil {
		return s.fail(err)
	}

	newDoc := backend.NewDocument{
		Email:                    email,
		RegistrationStep:         state.StepImageUpload,
		HasCompletedRegistration: false,
	}
	if err := s.client.CreateDocument(ctx, user.ID, newDoc); err != nil {
		return s.fail(err)
	}

	s.store.SetUser(toStateUser(user))
	s.store.SignupSuccess()
	return true
}

// Logout signs out of the backend, clears the local mirror flag, and resets
// the whole state record.
func (s *AuthService) Logout(ctx context.Context) bool {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	if err := s.client.SignOut(ctx); err != nil {
		return s.fail(err)
	}
	if err := s.prefs.Delete(ctx, prefs.HasCompletedRegistrationKey); err != nil {
		return s.fail(err)
	}
	s.store.Logout()
	return true
}

// SubmitProfileImage uploads the image behind localURI, replaces any
// previously stored image (best effort), and records the new URL in the
// user document and identity record.
func (s *AuthService) SubmitProfileImage(ctx context.Context, localURI string) bool {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	snap := s.store.Snapshot()
	if snap.User == nil {
		return s.fail(errNoAuthenticatedUser)
	}
	uid := snap.User.ID

	data, err := readImageURI(ctx, localURI)
	if err != nil {
		return s.fail(err)
	}

	imagePath := fmt.Sprintf("profile_images/%s/%d.jpg", uid, time.Now().UnixMilli())

	// Deleting the old image is best effort; the upload proceeds even if it
	// fails.
	oldPath := s.storedImagePath(ctx, uid)
	if oldPath != "" {
		if err := s.client.DeleteObject(ctx, oldPath); err != nil {
			s.log.Warn(ctx, "error deleting old profile image", "path", oldPath, "error", err)
		}
	}

	downloadURL, err := s.client.UploadObject(ctx, imagePath, data)
	if err != nil {
		return s.fail(err)
	}

	step := state.StepPersonalInfo
	patch := backend.DocumentPatch{
		ProfileImageURL:  &downloadURL,
		ProfileImagePath: &imagePath,
		RegistrationStep: &step,
	}
	if err := s.client.UpdateDocument(ctx, uid, patch); err != nil {
		return s.fail(err)
	}

	if err := s.client.UpdateProfile(ctx, backend.ProfileUpdate{PhotoURL: &downloadURL}); err != nil {
		return s.fail(err)
	}

	s.store.UpdateProfileImage(state.ProfileImagePayload{LocalURI: localURI, DownloadURL: downloadURL})
	return true
}

// SubmitPersonalInfo writes the personal-info fields to the user document,
// marks registration completed, and mirrors the flag locally.
func (s *AuthService) SubmitPersonalInfo(ctx context.Context, info state.PersonalInfo) bool {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	snap := s.store.Snapshot()
	if snap.User == nil {
		return s.fail(errNoAuthenticatedUser)
	}
	uid := snap.User.ID

	completed := true
	patch := backend.DocumentPatch{
		FirstName:                &info.FirstName,
		LastName:                 &info.LastName,
		Email:                    &info.Email,
		Phone:                    &info.Phone,
		Address:                  &info.Address,
		HasCompletedRegistration: &completed,
	}
	if err := s.client.UpdateDocument(ctx, uid, patch); err != nil {
		return s.fail(err)
	}

	displayName := info.FirstName + " " + info.LastName
	if err := s.client.UpdateProfile(ctx, backend.ProfileUpdate{DisplayName: &displayName}); err != nil {
		return s.fail(err)
	}

	s.store.UpdatePersonalInfo(info)

	if err := s.prefs.Set(ctx, prefs.HasCompletedRegistrationKey, "true"); err != nil {
		return s.fail(err)
	}
	return true
}

// UpdateProfile applies a partial personal-info update to the user document.
// The display name is refreshed only when both name fields are supplied.
func (s *AuthService) UpdateProfile(ctx context.Context, newData PersonalInfoPatch) bool {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	snap := s.store.Snapshot()
	if snap.User == nil {
		return s.fail(errNoAuthenticatedUser)
	}
	uid := snap.User.ID

	patch := backend.DocumentPatch{
		FirstName: newData.FirstName,
		LastName:  newData.LastName,
		Email:     newData.Email,
		Phone:     newData.Phone,
		Address:   newData.Address,
	}
	if err := s.client.UpdateDocument(ctx, uid, patch); err != nil {
		return s.fail(err)
	}

	if newData.FirstName != nil && newData.LastName != nil {
		displayName := *newData.FirstName + " " + *newData.LastName
		if err := s.client.UpdateProfile(ctx, backend.ProfileUpdate{DisplayName: &displayName}); err != nil {
			return s.fail(err)
		}
	}

	// The partial patch is stored as the full record, zero values included.
	// This mirrors the shipped app's behavior; callers pass complete data.
	s.store.UpdatePersonalInfo(newData.toPersonalInfo())
	return true
}

// UpdateUserProfile combines a personal-info update with an optional image
// replacement in one sequence. An empty imageURI skips the image steps.
func (s *AuthService) UpdateUserProfile(ctx context.Context, info state.PersonalInfo, imageURI string) bool {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	snap := s.store.Snapshot()
	if snap.User == nil {
		return s.fail(errNoAuthenticatedUser)
	}
	uid := snap.User.ID

	patch := backend.DocumentPatch{
		FirstName: &info.FirstName,
		LastName:  &info.LastName,
		Email:     &info.Email,
		Phone:     &info.Phone,
		Address:   &info.Address,
	}

	if imageURI != "" {
		data, err := readImageURI(ctx, imageURI)
		if err != nil {
			return s.fail(err)
		}

		imagePath := fmt.Sprintf("profile_images/%s/%d.jpg", uid, time.Now().UnixMilli())

		oldPath := s.storedImagePath(ctx, uid)
		if oldPath != "" {
			if err := s.client.DeleteObject(ctx, oldPath); err != nil {
				s.log.Warn(ctx, "error deleting old profile image", "path", oldPath, "error", err)
			}
		}

		downloadURL, err := s.client.UploadObject(ctx, imagePath, data)
		if err != nil {
			return s.fail(err)
		}

		patch.ProfileImageURL = &downloadURL
		patch.ProfileImagePath = &imagePath

		if err := s.client.UpdateProfile(ctx, backend.ProfileUpdate{PhotoURL: &downloadURL}); err != nil {
			return s.fail(err)
		}

		s.store.UpdateProfileImage(state.ProfileImagePayload{LocalURI: imageURI, DownloadURL: downloadURL})
	}

	if err := s.client.UpdateDocument(ctx, uid, patch); err != nil {
		return s.fail(err)
	}

	displayName := info.FirstName + " " + info.LastName
	if err := s.client.UpdateProfile(ctx, backend.ProfileUpdate{DisplayName: &displayName}); err != nil {
		return s.fail(err)
	}

	s.store.UpdatePersonalInfo(info)
	return true
}

// --- helpers ---

// restoreCompletedRegistration emits SetRegistrationCompleted and mirrors
// the flag locally when the document says registration is finished. Missing
// document fields default to empty strings; the email falls back to the
// identity record for documents written before the field existed.
func (s *AuthService) restoreCompletedRegistration(ctx context.Context, user *backend.User, doc *backend.Document) error {
	if !doc.HasCompletedRegistration {
		return nil
	}

	email := doc.Email
	if email == "" {
		email = user.Email
	}

	info := state.PersonalInfo{
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		Email:     email,
		Phone:     doc.Phone,
		Address:   doc.Address,
	}

	s.store.SetRegistrationCompleted(state.RegistrationCompletedPayload{
		PersonalInfo:    info,
		ProfileImageURL: doc.ProfileImageURL,
	})

	if err := s.prefs.Set(ctx, prefs.HasCompletedRegistrationKey, "true"); err != nil {
		return fmt.Errorf("persisting registration flag: %w", err)
	}
	return nil
}

// storedImagePath looks up the previously recorded storage path, if any. A
// missing document simply means there is nothing to delete.
func (s *AuthService) storedImagePath(ctx context.Context, uid string) string {
	doc, err := s.client.GetDocument(ctx, uid)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.log.Warn(ctx, "error reading user document", "error", err)
		}
		return ""
	}
	return doc.ProfileImagePath
}

// readImageURI resolves an image URI to raw bytes. http(s) URIs are fetched
// over the network, anything else is read from the local filesystem.
func readImageURI(ctx context.Context, uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return netx.FetchURL(ctx, uri)
	}
	return filex.ReadLocalURI(uri)
}

func toStateUser(u *backend.User) *state.User {
	if u == nil {
		return nil
	}
	return &state.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
	}
}

// PersonalInfoPatch is a partial personal-info update; nil fields are left
// untouched in the document.
type PersonalInfoPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
}

func (p PersonalInfoPatch) toPersonalInfo() state.PersonalInfo {
	var info state.PersonalInfo
	if p.FirstName != nil {
		info.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		info.LastName = *p.LastName
	}
	if p.Email != nil {
		info.Email = *p.Email
	}
	if p.Phone != nil {
		info.Phone = *p.Phone
	}
	if p.Address != nil {
		info.Address = *p.Address
	}
	return info
}
