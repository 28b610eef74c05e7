package cli

import (
	"context"
	"fmt"
)

func (a *App) Register(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.service.Register(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id=%d)\n", user.Email, user.ID)
	return nil
}
