package main

import (
	"github.com/thirdweb-dev/blockquery/cmd"
)

func main() {
	cmd.Execute()
}
