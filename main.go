package main

import (
	"os"

	"github.com/weihanlin/gsatbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
