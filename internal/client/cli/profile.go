package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/eventkeeper/eventkeeper/internal/client/state"
)

// imageUploadPrompt is the second onboarding step. Returns true to exit.
func (a *App) imageUploadPrompt(ctx context.Context) bool {
	fmt.Println("Step 2 of 3: profile image")
	uri, err := GetSimpleText(a.reader, "-Image path or URL (empty to logout)")
	if err != nil {
		return true
	}
	if uri == "" {
		a.authService.Logout(ctx)
		return false
	}

	if a.authService.SubmitProfileImage(ctx, uri) {
		fmt.Println("Image uploaded")
	}
	return false
}

// personalInfoPrompt is the final onboarding step. Returns true to exit.
func (a *App) personalInfoPrompt(ctx context.Context) bool {
	fmt.Println("Step 3 of 3: personal info")

	info, err := a.readPersonalInfo()
	if err != nil {
		return true
	}

	if a.authService.SubmitPersonalInfo(ctx, info) {
		fmt.Println("Registration completed")
	}
	return false
}

func (a *App) readPersonalInfo() (state.PersonalInfo, error) {
	var info state.PersonalInfo
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"-First name", &info.FirstName},
		{"-Last name", &info.LastName},
		{"-Email", &info.Email},
		{"-Phone", &info.Phone},
		{"-Address", &info.Address},
	}
	for _, f := range fields {
		value, err := GetSimpleText(a.reader, f.prompt)
		if err != nil {
			return info, err
		}
		*f.dst = value
	}
	return info, nil
}

func (a *App) showProfile() {
	snap := a.store.Snapshot()
	if snap.User != nil {
		fmt.Println("Name: ", snap.User.DisplayName)
		fmt.Println("Email:", snap.User.Email)
	}
	if snap.PersonalInfo != nil {
		fmt.Println("Phone:  ", snap.PersonalInfo.Phone)
		fmt.Println("Address:", snap.PersonalInfo.Address)
	}
	if snap.ProfileImageURL != "" {
		fmt.Println("Image:  ", snap.ProfileImageURL)
	}
}

// editProfile updates the stored personal info, optionally with a new image.
func (a *App) editProfile(ctx context.Context) {
	info, err := a.readPersonalInfo()
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	uri, err := GetSimpleText(a.reader, "-New image path or URL (empty to keep)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if a.authService.UpdateUserProfile(ctx, info, uri) {
		fmt.Println("Profile updated")
	}
}

func (a *App) listEvents(ctx context.Context) {
	events, err := a.eventService.FetchEvents(ctx)
	if err != nil {
		fmt.Println("Error fetching events")
		return
	}
	for _, e := range events {
		fmt.Printf("#%d %s\n", e.ID, e.Title)
	}
}

func (a *App) listOrganizers(ctx context.Context) {
	organizers, err := a.eventService.FetchOrganizers(ctx)
	if err != nil {
		fmt.Println("Error fetching organizers")
		return
	}
	for _, o := range organizers {
		fmt.Printf("%s <%s>\n", o.Name, o.Email)
	}
}
