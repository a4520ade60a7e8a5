package commands

import (
	"context"
)

type PasswordCmd struct {
	Request PasswordRequestCmd `cmd:"" help:"Request a password recovery email"`
	Reset   PasswordResetCmd   `cmd:"" help:"Reset the password with a recovery token"`
	Set     PasswordSetCmd     `cmd:"" help:"Set the first password of a new account"`
}

type PasswordRequestCmd struct {
	Rut string `arg:"" help:"RUT of the account"`
}

func (p *PasswordRequestCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	res, err := a.client.RequestPasswordReset(ctx, p.Rut)
	if err != nil {
		return err
	}

	a.printResult(res, "Se ha enviado un correo con las instrucciones")
	return nil
}

type PasswordResetCmd struct {
	Token    string `arg:"" help:"Recovery token from the email link"`
	Password string `help:"New password" required:"" env:"INVENTARIO_NEW_PASSWORD"`
}

func (p *PasswordResetCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	res, err := a.client.ResetPassword(ctx, p.Token, p.Password)
	if err != nil {
		return err
	}

	a.printResult(res, "Contraseña actualizada")
	return nil
}

type PasswordSetCmd struct {
	Token    string `arg:"" help:"Activation token from the welcome email"`
	Password string `help:"Password" required:"" env:"INVENTARIO_NEW_PASSWORD"`
}

func (p *PasswordSetCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	res, err := a.client.SetPassword(ctx, p.Token, p.Password)
	if err != nil {
		return err
	}

	a.printResult(res, "Contraseña establecida")
	return nil
}
