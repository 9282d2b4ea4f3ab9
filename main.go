// main.go - geomkit entry point
package main

import "github.com/valpere/geomkit/cmd"

func main() {
	cmd.Execute()
}
