package cli

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/filekeeper/internal/common"
)

func (a *App) SignUp(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.SignUp(ctx, email, string(password))
	if err != nil {
		log.Printf("Signup unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Account created: %s (%s)", user.Email, user.ID)
	return nil
}

func (a *App) Login(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Connect(ctx, email, string(password)); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.userEmail = email
	log.Printf("Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {

	if err := a.api.Disconnect(ctx); err != nil {
		log.Printf("Logout error: %s", err.Error())
	}

	a.userEmail = ""
	log.Printf("Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {

	user, err := a.api.Me(ctx)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	log.Printf("Signed in as %s (%s)", user.Email, user.ID)
	return nil
}
