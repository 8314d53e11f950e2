package main

import (
	"os"

	"github.com/llehouerou/trackshelf/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
