package main

import "fmt"

// Version is stamped by the build via -ldflags
var Version = "develop"

// Commit is the short hash of the build commit
var Commit = "unknown"

func main() {
	fmt.Printf("slotplan-service %s (%s)\n", Version, Commit)
}
