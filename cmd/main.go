// cmd/main.go
package main

import cmd "github.com/LoboGuardian/ollama-llm-benchmarks/cmd/ollamabench"

// main starts the benchmark CLI by delegating to the cobra root
// command defined in the ollamabench package.
func main() {
	cmd.Execute()
}
