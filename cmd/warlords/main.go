package main

import (
	"context"

	"github.com/baxromumarov/warlords/cmd/warlords/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
