package main

import (
	"os"

	"github.com/Cosmits/check-truenas-extended-play/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
