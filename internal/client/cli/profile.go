package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/verdantly/verdantly/internal/common"
)

// Profile prints the current profile from the session store.
func (a *App) Profile(ctx context.Context) error {
	if !a.store.Logged() {
		log.Printf("error: %v", common.ErrorNotLoggedIn)
		return common.ErrorNotLoggedIn
	}

	p := a.store.Profile()
	fmt.Println("First name:  ", p.FirstName)
	fmt.Println("Last name:   ", p.LastName)
	fmt.Println("Username:    ", p.Username)
	fmt.Println("Phone number:", p.PhoneNumber)
	fmt.Println("Birthday:    ", p.Birthday)
	fmt.Println("Account type:", a.store.AccountType())
	if avatar := a.store.AvatarPath(); avatar != "" {
		fmt.Println("Picture:     ", avatar)
	}
	return nil
}

// Edit runs one interactive edit session: seed a draft from the current
// profile, collect field values (Enter keeps the current one), optionally
// attach a new picture, then commit or discard. A failed commit keeps the
// draft so nothing has to be retyped; this loop simply reports and returns.
func (a *App) Edit(ctx context.Context) error {
	if err := a.profileService.BeginEdit(); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	draft, _ := a.profileService.Draft()
	fields := draft.Fields

	var err error
	if fields.FirstName, err = GetTextWithDefault(a.reader, "-First name", fields.FirstName, os.Stdout); err != nil {
		return err
	}
	if fields.LastName, err = GetTextWithDefault(a.reader, "-Last name", fields.LastName, os.Stdout); err != nil {
		return err
	}
	if fields.Username, err = GetTextWithDefault(a.reader, "-Username", fields.Username, os.Stdout); err != nil {
		return err
	}
	if fields.Birthday, err = GetTextWithDefault(a.reader, "-Birthday", fields.Birthday, os.Stdout); err != nil {
		return err
	}
	if fields.PhoneNumber, err = GetTextWithDefault(a.reader, "-Phone number", fields.PhoneNumber, os.Stdout); err != nil {
		return err
	}

	if err := a.profileService.SetFields(fields); err != nil {
		return err
	}

	picture, err := GetSimpleText(a.reader, "-New picture path (empty to keep current)", os.Stdout)
	if err != nil {
		return err
	}
	if picture != "" {
		if err := a.profileService.AttachAsset(picture); err != nil {
			return err
		}
	}

	answer, err := GetSimpleText(a.reader, "-Save changes? (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "yes" {
		a.profileService.Cancel()
		log.Printf("Edit cancelled")
		return nil
	}

	if err := a.profileService.Save(ctx); err != nil {
		log.Printf("Save failed: %s (your edits are kept, run 'edit' to retry)", err.Error())
		return err
	}

	log.Printf("Profile updated")
	return nil
}
