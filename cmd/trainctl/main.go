package main

import (
	"os"

	"diagnosd/internal/trainctl"
)

func main() { os.Exit(trainctl.Main()) }
