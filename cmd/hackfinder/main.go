package main

import (
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/cli"
)

func main() {
	cli.Execute()
}
