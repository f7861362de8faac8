// Package state holds the client's canonical view of the authenticated user
// and the onboarding flow. The AuthState record is owned exclusively by the
// Store and mutated only through the defined transitions; orchestration and
// I/O live in the services layer.
package state

// User is the identity record mirrored from the backend session.
type User struct {
	ID          string
	Email       string
	DisplayName string
	PhotoURL    string
}

// PersonalInfo is the profile data collected during the final onboarding step.
type PersonalInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

// ProfileImagePayload carries the local URI and resolved remote URL of an
// uploaded profile image. Both fields are set together.
type ProfileImagePayload struct {
	LocalURI    string
	DownloadURL string
}

// RegistrationCompletedPayload restores a finished registration from the
// backend user document.
type RegistrationCompletedPayload struct {
	PersonalInfo    PersonalInfo
	ProfileImageURL string
}

// Registration step values. Steps advance on success of the corresponding
// onboarding stage and reset to StepLogin when registration completes or the
// user logs out.
const (
	StepLogin        = 0
	StepSignup       = 1
	StepImageUpload  = 2
	StepPersonalInfo = 3
)

// AuthState is the single client-side auth record.
//
// Invariants:
//   - IsAuthenticated always equals User != nil (except after SignupSuccess,
//     which asserts authentication for the just-created account).
//   - IsLoading is true strictly while an orchestration call is in flight.
//   - Once HasCompletedRegistration is true it stays true until Logout.
type AuthState struct {
	User                     *User
	IsAuthenticated          bool
	IsLoading                bool
	Error                    string
	RegistrationStep         int
	ProfileImage             string
	ProfileImageURL          string
	PersonalInfo             *PersonalInfo
	HasCompletedRegistration bool
}

// initialState returns the process-start default. IsLoading starts true: the
// UI shows a splash until the first session check completes.
func initialState() AuthState {
	return AuthState{
		IsLoading:        true,
		RegistrationStep: StepLogin,
	}
}
