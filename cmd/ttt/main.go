// Command ttt manages a todo.txt task list: add, edit, complete, postpone
// and archive tasks, render the due-date-grouped listing, watch the file
// for external changes, and serve a live read-only dashboard.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
