package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eventkeeper/eventkeeper/internal/client/backend"
	"github.com/eventkeeper/eventkeeper/internal/client/repositories/prefs"
	"github.com/eventkeeper/eventkeeper/internal/client/state"
	"github.com/eventkeeper/eventkeeper/internal/common"
	"github.com/eventkeeper/eventkeeper/internal/logging"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// fakeClient is a scripted backend double recording the arguments of every
// call.
type fakeClient struct {
	currentUser    *backend.User
	currentUserErr error

	signInUser *backend.User
	signInErr  error
	signUpUser *backend.User
	signUpErr  error
	signOutErr error

	doc          *backend.Document
	getDocErr    error
	createDocErr error
	updateDocErr error

	updateProfileErr error

	uploadURL string
	uploadErr error
	deleteErr error

	LastSignInEmail    string
	LastSignInPassword string
	LastSignUpEmail    string
	SignOutCalled      bool

	LastCreateDocUserID string
	LastCreateDoc       backend.NewDocument
	LastPatchUserID     string
	LastPatch           backend.DocumentPatch
	ProfileUpdates      []backend.ProfileUpdate

	LastUploadPath string
	LastUploadData []byte
	DeletedPaths   []string
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*backend.User, error) {
	return f.currentUser, f.currentUserErr
}

func (f *fakeClient) SignIn(ctx context.Context, email, password string) (*backend.User, error) {
	f.LastSignInEmail = email
	f.LastSignInPassword = password
	return f.signInUser, f.signInErr
}

func (f *fakeClient) SignUp(ctx context.Context, email, password string) (*backend.User, error) {
	f.LastSignUpEmail = email
	return f.signUpUser, f.signUpErr
}

func (f *fakeClient) SignOut(ctx context.Context) error {
	f.SignOutCalled = true
	return f.signOutErr
}

func (f *fakeClient) GetDocument(ctx context.Context, userID string) (*backend.Document, error) {
	if f.getDocErr != nil {
		return nil, f.getDocErr
	}
	return f.doc, nil
}

func (f *fakeClient) CreateDocument(ctx context.Context, userID string, doc backend.NewDocument) error {
	f.LastCreateDocUserID = userID
	f.LastCreateDoc = doc
	return f.createDocErr
}

func (f *fakeClient) UpdateDocument(ctx context.Context, userID string, patch backend.DocumentPatch) error {
	f.LastPatchUserID = userID
	f.LastPatch = patch
	return f.updateDocErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, update backend.ProfileUpdate) error {
	f.ProfileUpdates = append(f.ProfileUpdates, update)
	return f.updateProfileErr
}

func (f *fakeClient) UploadObject(ctx context.Context, path string, data []byte) (string, error) {
	f.LastUploadPath = path
	f.LastUploadData = data
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return f.uploadURL, nil
}

func (f *fakeClient) DeleteObject(ctx context.Context, path string) error {
	f.DeletedPaths = append(f.DeletedPaths, path)
	return f.deleteErr
}

func (f *fakeClient) Close() error { return nil }

// --- helpers ---

func newPrefsRepo(t *testing.T) prefs.Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:authsvc_%s?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	db, err := prefs.InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return prefs.NewSQLiteRepository(db)
}

func newAuthService(t *testing.T, client backend.Client) (*AuthService, *state.Store, prefs.Repository) {
	t.Helper()
	store := state.NewStore()
	repo := newPrefsRepo(t)
	svc := NewAuthService(store, client, repo, logging.NewDiscard())
	return svc, store, repo
}

func writeTempImage(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "avatar.jpg")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// --- CheckAuthState ---

func TestCheckAuthStateNoSession(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	svc, store, repo := newAuthService(t, fc)

	require.NoError(t, repo.Set(ctx, prefs.HasCompletedRegistrationKey, "true"))

	ok := svc.CheckAuthState(ctx)
	require.False(t, ok)

	s := store.Snapshot()
	require.Nil(t, s.User)
	require.False(t, s.IsAuthenticated)
	require.False(t, s.IsLoading)

	_, err := repo.Get(ctx, prefs.HasCompletedRegistrationKey)
	require.ErrorIs(t, err, common.ErrorNotFound, "stale mirror flag must be cleared")
}

func TestCheckAuthStateSeedsMissingDocument(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		currentUser: &backend.User{ID: "u1", Email: "jane@example.com"},
		getDocErr:   common.ErrorNotFound,
	}
	svc, store, _ := newAuthService(t, fc)

	ok := svc.CheckAuthState(ctx)
	require.True(t, ok)

	require.Equal(t, "u1", fc.LastCreateDocUserID)
	require.Equal(t, backend.NewDocument{
		Email:                    "jane@example.com",
		RegistrationStep:         state.StepImageUpload,
		HasCompletedRegistration: false,
	}, fc.LastCreateDoc)

	s := store.Snapshot()
	require.True(t, s.IsAuthenticated)
	require.Equal(t, "u1", s.User.ID)
	require.False(t, s.HasCompletedRegistration)
}

func TestCheckAuthStateRestoresCompletedRegistration(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		currentUser: &backend.User{ID: "u1", Email: "identity@example.com"},
		doc: &backend.Document{
			FirstName:                "Jane",
			LastName:                 "Doe",
			Phone:                    "555",
			Address:                  "Main St 1",
			ProfileImageURL:          "https://cdn/jane.jpg",
			HasCompletedRegistration: true,
		},
	}
	svc, store, repo := newAuthService(t, fc)

	ok := svc.CheckAuthState(ctx)
	require.True(t, ok)

	s := store.Snapshot()
	require.True(t, s.HasCompletedRegistration)
	require.Equal(t, state.StepLogin, s.RegistrationStep)
	require.Equal(t, "https://cdn/jane.jpg", s.ProfileImageURL)
	require.Equal(t, "Jane", s.PersonalInfo.FirstName)
	require.Equal(t, "identity@example.com", s.PersonalInfo.Email,
		"document without email falls back to the identity record")

	v, err := repo.Get(ctx, prefs.HasCompletedRegistrationKey)
	require.NoError(t, err)
	require.Equal(t, "true", v)
}

func TestCheckAuthStateIncompleteRegistrationLeavesFlow(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		currentUser: &backend.User{ID: "u1", Email: "a@b.c"},
		doc:         &backend.Document{RegistrationStep: state.StepImageUpload},
	}
	svc, store, _ := newAuthService(t, fc)

	require.True(t, svc.CheckAuthState(ctx))

	s := store.Snapshot()
	require.False(t, s.HasCompletedRegistration)
	require.Empty(t, fc.LastCreateDocUserID, "existing document must not be recreated")
}

// --- Login / Signup / Logout ---

func TestLoginSuccessWithoutDocument(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		signInUser: &backend.User{ID: "u1", Email: "a@b.c"},
		getDocErr:  common.ErrorNotFound,
	}
	svc, store, _ := newAuthService(t, fc)

	ok := svc.Login(ctx, "a@b.c", "secret1")
	require.True(t, ok)
	require.Equal(t, "a@b.c", fc.LastSignInEmail)
	require.Equal(t, "secret1", fc.LastSignInPassword)

	s := store.Snapshot()
	require.True(t, s.IsAuthenticated)
	require.Equal(t, "", s.Error)
	require.False(t, s.IsLoading)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		signInErr: &backend.APIError{Status: 401, Code: common.CodeWrongPassword, Message: "wrong password"},
	}
	svc, store, _ := newAuthService(t, fc)
	store.SetError("stale error")

	ok := svc.Login(ctx, "a@b.c", "nope")
	require.False(t, ok)

	s := store.Snapshot()
	require.False(t, s.IsAuthenticated)
	require.Equal(t, "Incorrect password. Please try again.", s.Error)
	require.False(t, s.IsLoading)
}

func TestLoginClearsPreviousError(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		signInUser: &backend.User{ID: "u1"},
		getDocErr:  common.ErrorNotFound,
	}
	svc, store, _ := newAuthService(t, fc)
	store.SetError("old failure")

	require.True(t, svc.Login(ctx, "a@b.c", "secret1"))
	require.Equal(t, "", store.Snapshot().Error)
}

func TestSignupSuccess(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{signUpUser: &backend.User{ID: "u9", Email: "new@example.com"}}
	svc, store, _ := newAuthService(t, fc)

	ok := svc.Signup(ctx, "new@example.com", "secret1")
	require.True(t, ok)

	require.Equal(t, "u9", fc.LastCreateDocUserID)
	require.Equal(t, backend.NewDocument{
		Email:                    "new@example.com",
		RegistrationStep:         state.StepImageUpload,
		HasCompletedRegistration: false,
	}, fc.LastCreateDoc)

	s := store.Snapshot()
	require.True(t, s.IsAuthenticated)
	require.Equal(t, state.StepImageUpload, s.RegistrationStep)
}

func TestSignupEmailInUse(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		signUpErr: &backend.APIError{Status: 409, Code: common.CodeEmailExists, Message: "email is already in use"},
	}
	svc, store, _ := newAuthService(t, fc)

	require.False(t, svc.Signup(ctx, "taken@example.com", "secret1"))
	// no table entry for this code, the backend message passes through
	require.Equal(t, "email is already in use", store.Snapshot().Error)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{currentUser: &backend.User{ID: "u1"}, getDocErr: common.ErrorNotFound}
	svc, store, repo := newAuthService(t, fc)

	require.True(t, svc.CheckAuthState(ctx))
	require.NoError(t, repo.Set(ctx, prefs.HasCompletedRegistrationKey, "true"))

	ok := svc.Logout(ctx)
	require.True(t, ok)
	require.True(t, fc.SignOutCalled)

	_, err := repo.Get(ctx, prefs.HasCompletedRegistrationKey)
	require.ErrorIs(t, err, common.ErrorNotFound)

	s := store.Snapshot()
	require.Nil(t, s.User)
	require.False(t, s.IsAuthenticated)
}

// --- profile image ---

func TestSubmitProfileImage(t *testing.T) {
	ctx := context.Background()
	img := []byte{0xff, 0xd8, 0xff, 0x01}
	uri := writeTempImage(t, img)

	fc := &fakeClient{
		getDocErr: common.ErrorNotFound,
		uploadURL: "https://cdn/new.jpg",
	}
	svc, store, _ := newAuthService(t, fc)
	store.SetUser(&state.User{ID: "u1"})

	ok := svc.SubmitProfileImage(ctx, uri)
	require.True(t, ok)

	require.True(t, strings.HasPrefix(fc.LastUploadPath, "profile_images/u1/"))
	require.True(t, strings.HasSuffix(fc.LastUploadPath, ".jpg"))
	require.Equal(t, img, fc.LastUploadData)

	require.Equal(t, "u1", fc.LastPatchUserID)
	require.Equal(t, "https://cdn/new.jpg", *fc.LastPatch.ProfileImageURL)
	require.Equal(t, fc.LastUploadPath, *fc.LastPatch.ProfileImagePath)
	require.Equal(t, state.StepPersonalInfo, *fc.LastPatch.RegistrationStep)

	require.Len(t, fc.ProfileUpdates, 1)
	require.Equal(t, "https://cdn/new.jpg", *fc.ProfileUpdates[0].PhotoURL)

	s := store.Snapshot()
	require.Equal(t, uri, s.ProfileImage)
	require.Equal(t, "https://cdn/new.jpg", s.ProfileImageURL)
	require.Equal(t, state.StepPersonalInfo, s.RegistrationStep)
}

func TestSubmitProfileImageReplacesOldImage(t *testing.T) {
	ctx := context.Background()
	uri := writeTempImage(t, []byte("img"))

	fc := &fakeClient{
		doc:       &backend.Document{ProfileImagePath: "profile_images/u1/old.jpg"},
		uploadURL: "https://cdn/new.jpg",
	}
	svc, store, _ := newAuthService(t, fc)
	store.SetUser(&state.User{ID: "u1"})

	require.True(t, svc.SubmitProfileImage(ctx, uri))
	require.Equal(t, []string{"profile_images/u1/old.jpg"}, fc.DeletedPaths)
}

func TestSubmitProfileImageDeleteFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	uri := writeTempImage(t, []byte("img"))

	fc := &fakeClient{
		doc:       &backend.Document{ProfileImagePath: "profile_images/u1/old.jpg"},
		deleteErr: errors.New("object storage down"),
		uploadURL: "https://cdn/new.jpg",
	}
	svc, store, _ := newAuthService(t, fc)
	store.SetUser(&state.User{ID: "u1"})

	require.True(t, svc.SubmitProfileImage(ctx, uri))
	require.Equal(t, "", store.Snapshot().Error)
}

func TestSubmitProfileImageWithoutSession(t *testing.T) {
	svc, store, _ := newAuthService(t, &fakeClient{})

	require.False(t, svc.SubmitProfileImage(context.Background(), "whatever.jpg"))
	require.Equal(t, "No authenticated user found", store.Snapshot().Error)
}

// --- personal info ---

func TestSubmitPersonalInfo(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	svc, store, repo := newAuthService(t, fc)
	store.SetUser(&state.User{ID: "u1"})

	info := state.PersonalInfo{
		FirstName: "Jane", LastName: "Doe",
		Email: "jane@example.com", Phone: "555", Address: "Main St 1",
	}
	ok := svc.SubmitPersonalInfo(ctx, info)
	require.True(t, ok)

	require.Equal(t, "Jane", *fc.LastPatch.FirstName)
	require.Equal(t, "Doe", *fc.LastPatch.LastName)
	require.True(t, *fc.LastPatch.HasCompletedRegistration)
	require.Nil(t, fc.LastPatch.RegistrationStep)

	require.Len(t, fc.ProfileUpdates, 1)
	require.Equal(t, "Jane Doe", *fc.ProfileUpdates[0].DisplayName)

	s := store.Snapshot()
	require.True(t, s.HasCompletedRegistration)
	require.Equal(t, state.StepLogin, s.RegistrationStep)
	require.Equal(t, info, *s.PersonalInfo)

	v, err := repo.Get(ctx, prefs.HasCompletedRegistrationKey)
	require.NoError(t, err)
	require.Equal(t, "true", v)
}

func TestUpdateProfilePartialPatch(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	svc, store, _ := newAuthService(t, fc)
	store.SetUser(&state.User{ID: "u1"})

	first := "Jane"
	phone := "777"
	ok := svc.UpdateProfile(ctx, PersonalInfoPatch{FirstName: &first, Phone: &phone})
	require.True(t, ok)

	require.Equal(t, "Jane", *fc.LastPatch.FirstName)
	require.Nil(t, fc.LastPatch.LastName)
	require.Equal(t, "777", *fc.LastPatch.Phone)

	// only one name supplied, so no display-name refresh
	require.Empty(t, fc.ProfileUpdates)

	// the partial patch is stored as the full record, zero values included
	s := store.Snapshot()
	require.Equal(t, state.PersonalInfo{FirstName: "Jane", Phone: "777"}, *s.PersonalInfo)
}

func TestUpdateProfileBothNamesRefreshDisplayName(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	svc, store, _ := newAuthService(t, fc)
	store.SetUser(&state.User{ID: "u1"})

	first, last := "Jane", "Doe"
	require.True(t, svc.UpdateProfile(ctx, PersonalInfoPatch{FirstName: &first, LastName: &last}))

	require.Len(t, fc.ProfileUpdates, 1)
	require.Equal(t, "Jane Doe", *fc.ProfileUpdates[0].DisplayName)
}

func TestUpdateUserProfileWithImage(t *testing.T) {
	ctx := context.Background()
	uri := writeTempImage(t, []byte("img"))

	fc := &fakeClient{getDocErr: common.ErrorNotFound, uploadURL: "https://cdn/combined.jpg"}
	svc, store, _ := newAuthService(t, fc)
	store.SetUser(&state.User{ID: "u1"})

	info := state.PersonalInfo{FirstName: "Jane", LastName: "Doe", Email: "a@b.c"}
	require.True(t, svc.UpdateUserProfile(ctx, info, uri))

	require.Equal(t, "https://cdn/combined.jpg", *fc.LastPatch.ProfileImageURL)
	require.Equal(t, "Jane", *fc.LastPatch.FirstName)

	// photo update plus display-name update
	require.Len(t, fc.ProfileUpdates, 2)
	require.Equal(t, "https://cdn/combined.jpg", *fc.ProfileUpdates[0].PhotoURL)
	require.Equal(t, "Jane Doe", *fc.ProfileUpdates[1].DisplayName)

	s := store.Snapshot()
	require.Equal(t, info, *s.PersonalInfo)
	require.Equal(t, "https://cdn/combined.jpg", s.ProfileImageURL)
}

func TestUpdateUserProfileWithoutImageSkipsUpload(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	svc, store, _ := newAuthService(t, fc)
	store.SetUser(&state.User{ID: "u1"})

	require.True(t, svc.UpdateUserProfile(ctx, state.PersonalInfo{FirstName: "Jane", LastName: "Doe"}, ""))
	require.Empty(t, fc.LastUploadPath)
	require.Nil(t, fc.LastPatch.ProfileImageURL)
}

func TestOperationsAlwaysClearLoading(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		currentUserErr: errors.New("backend down"),
		signInErr:      errors.New("backend down"),
	}
	svc, store, _ := newAuthService(t, fc)

	svc.CheckAuthState(ctx)
	require.False(t, store.Snapshot().IsLoading)

	svc.Login(ctx, "a@b.c", "x")
	require.False(t, store.Snapshot().IsLoading)

	svc.SubmitPersonalInfo(ctx, state.PersonalInfo{})
	require.False(t, store.Snapshot().IsLoading)
}
