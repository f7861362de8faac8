package state

import "sync"

// Store owns the AuthState record. All transitions are synchronous and
// total: they take the lock, apply the change, and notify subscribers with a
// copy of the new state. Readers never observe a partially applied
// transition.
//
// The store performs no I/O. It is passed by reference to the services layer
// and to the UI instead of living as a package-level singleton.
type Store struct {
	mu   sync.Mutex
	s    AuthState
	subs map[int]func(AuthState)
	next int
}

func NewStore() *Store {
	return &Store{
		s:    initialState(),
		subs: make(map[int]func(AuthState)),
	}
}

// Snapshot returns a copy of the current state. Pointer fields are cloned so
// callers cannot mutate the store's record.
func (st *Store) Snapshot() AuthState {
	st.mu.Lock()
	defer st.mu.Unlock()
	return cloneState(st.s)
}

// Subscribe registers fn to be called with a state copy after every
// transition. The returned function removes the subscription.
func (st *Store) Subscribe(fn func(AuthState)) func() {
	st.mu.Lock()
	id := st.next
	st.next++
	st.subs[id] = fn
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.subs, id)
		st.mu.Unlock()
	}
}

// SetUser stores the identity record and derives IsAuthenticated.
func (st *Store) SetUser(u *User) {
	st.apply(func(s *AuthState) {
		if u != nil {
			copied := *u
			s.User = &copied
		} else {
			s.User = nil
		}
		s.IsAuthenticated = u != nil
	})
}

func (st *Store) SetLoading(v bool) {
	st.apply(func(s *AuthState) {
		s.IsLoading = v
	})
}

func (st *Store) SetError(msg string) {
	st.apply(func(s *AuthState) {
		s.Error = msg
	})
}

func (st *Store) ClearError() {
	st.apply(func(s *AuthState) {
		s.Error = ""
	})
}

// SignupSuccess advances a fresh account to the image-upload step.
func (st *Store) SignupSuccess() {
	st.apply(func(s *AuthState) {
		s.RegistrationStep = StepImageUpload
		s.IsAuthenticated = true
	})
}

// UpdateProfileImage records the uploaded image pair and advances to the
// personal-info step.
func (st *Store) UpdateProfileImage(p ProfileImagePayload) {
	st.apply(func(s *AuthState) {
		s.ProfileImage = p.LocalURI
		s.ProfileImageURL = p.DownloadURL
		s.RegistrationStep = StepPersonalInfo
	})
}

// UpdatePersonalInfo stores the submitted profile data and marks registration
// as completed.
func (st *Store) UpdatePersonalInfo(info PersonalInfo) {
	st.apply(func(s *AuthState) {
		copied := info
		s.PersonalInfo = &copied
		s.HasCompletedRegistration = true
		s.RegistrationStep = StepLogin
	})
}

// Logout replaces the entire record with its initial value.
func (st *Store) Logout() {
	st.apply(func(s *AuthState) {
		*s = initialState()
	})
}

// SetRegistrationCompleted restores a finished registration from the backend
// document, bypassing the step-by-step flow.
func (st *Store) SetRegistrationCompleted(p RegistrationCompletedPayload) {
	st.apply(func(s *AuthState) {
		s.HasCompletedRegistration = true
		s.RegistrationStep = StepLogin
		copied := p.PersonalInfo
		s.PersonalInfo = &copied
		s.ProfileImageURL = p.ProfileImageURL
	})
}

func (st *Store) apply(mutate func(*AuthState)) {
	st.mu.Lock()
	mutate(&st.s)
	snapshot := cloneState(st.s)
	subs := make([]func(AuthState), 0, len(st.subs))
	for _, fn := range st.subs {
		subs = append(subs, fn)
	}
	st.mu.Unlock()

	// Notify outside the lock so subscribers may call Snapshot.
	for _, fn := range subs {
		fn(snapshot)
	}
}

func cloneState(s AuthState) AuthState {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.PersonalInfo != nil {
		p := *s.PersonalInfo
		out.PersonalInfo = &p
	}
	return out
}
