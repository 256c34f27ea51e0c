// Command-line tools: go run ./cmd/cli <command>
package main

import (
	_ "procurement.GO/custom"

	"procurement.GO/cmd"
	"procurement.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
