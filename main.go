package main

import "github.com/immocalc/property-calculator/cmd"

func main() {
	cmd.Execute()
}
