package main

import "os"

func main() {
	if err := Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}
