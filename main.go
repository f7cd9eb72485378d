package main

import "github.com/Rruubeenn23/WebCursor/cmd/macroplan"

func main() {
	macroplan.Execute()
}
