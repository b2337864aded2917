package main

import (
	"fmt"

	echoapi "github.com/stepm01/cruzHacks/apps/api/echo"
)

// token mints a session token the way the identity provider would. DEV only;
// production tokens come from the provider itself.
func (cli *commandLine) token(uid, name, email string) error {
	tok, err := echoapi.GenerateToken(echoapi.NewSessionClaims(uid, name, email))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cli.out, tok)
	return err
}
