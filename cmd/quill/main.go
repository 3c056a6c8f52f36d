package main

import (
	"os"

	"github.com/quill-dev/quill/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
