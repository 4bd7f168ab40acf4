package main

import (
	cmd "github.com/kerbaras/jeffbot/cmd/jeffbot"
)

func main() {
	cmd.Execute()
}
