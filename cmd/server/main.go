package main

import "github.com/worklog-app/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
