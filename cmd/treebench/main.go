// Executable treebench times updates and recalculation of an array Merkle
// tree. Run "treebench init" to write a config, then "treebench run".
package main

import "github.com/jrhy/arraymerkle/cmd/treebench/internal/cmd"

func main() {
	cmd.Execute()
}
