package cli

import (
	"context"
	"fmt"

	"github.com/eventkeeper/eventkeeper/internal/client/state"
)

// Root drives the screen selection loop. Routing mirrors the contract with
// the state store: while HasCompletedRegistration is false, RegistrationStep
// picks the onboarding prompt; once true, step routing is bypassed entirely.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to eventkeeper")

	a.authService.CheckAuthState(ctx)

	for {
		snap := a.store.Snapshot()
		if snap.Error != "" {
			fmt.Println("!", snap.Error)
			a.store.ClearError()
		}

		var done bool
		switch {
		case !snap.IsAuthenticated:
			done = a.welcomeMenu(ctx)
		case !snap.HasCompletedRegistration && snap.RegistrationStep == state.StepImageUpload:
			done = a.imageUploadPrompt(ctx)
		case !snap.HasCompletedRegistration && snap.RegistrationStep == state.StepPersonalInfo:
			done = a.personalInfoPrompt(ctx)
		default:
			done = a.mainMenu(ctx)
		}
		if done {
			fmt.Println("Bye!")
			return
		}
	}
}

// welcomeMenu is the unauthenticated screen. Returns true to exit the app.
func (a *App) welcomeMenu(ctx context.Context) bool {
	cmd, err := GetSimpleText(a.reader, "[login/signup/exit]")
	if err != nil {
		return true
	}

	switch cmd {
	case "login":
		a.Login(ctx)
	case "signup":
		a.Signup(ctx)
	case "exit", "quit":
		return true
	default:
		fmt.Println("Unknown command:", cmd)
	}
	return false
}

// mainMenu is the post-registration screen. Returns true to exit the app.
func (a *App) mainMenu(ctx context.Context) bool {
	cmd, err := GetSimpleText(a.reader, "[profile/edit/events/organizers/logout/exit]")
	if err != nil {
		return true
	}

	switch cmd {
	case "profile":
		a.showProfile()
	case "edit":
		a.editProfile(ctx)
	case "events":
		a.listEvents(ctx)
	case "organizers":
		a.listOrganizers(ctx)
	case "logout":
		a.authService.Logout(ctx)
	case "exit", "quit":
		return true
	default:
		fmt.Println("Unknown command:", cmd)
	}
	return false
}
