package main

import "github.com/oshokin/mcp-packager/cmd/mcp-packager/cmd"

func main() {
	cmd.Execute()
}
