package cli

import (
	"context"
	"fmt"
)

func (a *App) Login(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	token, err := a.service.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	fmt.Fprintln(a.out, token)
	return nil
}

func (a *App) Ping(ctx context.Context) error {

	if err := a.service.Ping(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "OK")
	return nil
}
