package main

import (
	"fmt"
	"os"

	"kharcha/expense-nlp/cmd/ask"
	"kharcha/expense-nlp/cmd/categorize"
	"kharcha/expense-nlp/cmd/parse"
	"kharcha/expense-nlp/cmd/root"
	"kharcha/expense-nlp/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(ask.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
