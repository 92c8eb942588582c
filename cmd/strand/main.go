package main

import (
	"github.com/strandplatform/strand-go/cmd/strand/cmd"
)

func main() {
	cmd.Execute()
}
