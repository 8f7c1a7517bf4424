package main

import (
	"github.com/dishantyadav04/agribid/app/wallet/cli/cmd"
)

func main() {
	cmd.Execute()
}
