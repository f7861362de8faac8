package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "-Enter email")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword("-Enter password")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if a.authService.Login(ctx, email, string(password)) {
		fmt.Println("Login successful")
	}
}

func (a *App) Signup(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "-Enter email")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword("-Enter password")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	confirm, err := GetPassword("-Confirm password")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	// Confirmation is checked here, before the service is involved.
	if string(password) != string(confirm) {
		a.store.SetError("Passwords do not match")
		return
	}

	if a.authService.Signup(ctx, email, string(password)) {
		fmt.Println("Account created")
	}
}
