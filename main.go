package main

import "github.com/unilanding/cms-backend/cmd"

func main() {
	cmd.Execute()
}
