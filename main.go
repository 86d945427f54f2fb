// Command citescore analyzes text and web pages for LLM citability.
package main

import "github.com/gaurav-prasanna/citescore/cmd"

func main() {
	cmd.Execute()
}
