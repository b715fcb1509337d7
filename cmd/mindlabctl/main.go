package main

import (
	_ "time/tzdata"

	"github.com/okian/mindlab/cmd/mindlabctl/root"
)

func main() {
	root.Execute()
}
