package main

import (
	"fmt"

	echoapi "github.com/trezcool/mahudhurio/apps/api/echo"
)

func (cli *commandLine) serviceToken(client string) error {
	token, err := echoapi.GenerateServiceToken(cli.conf, client)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
