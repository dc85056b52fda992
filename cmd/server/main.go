package main

import "github.com/prajayganiga-design/Mini-project/cmd/server/cmd"

func main() {
	cmd.Execute()
}
