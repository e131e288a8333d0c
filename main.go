package main

import "github.com/hrkit/hr-management/cmd"

func main() {
	cmd.Execute()
}
