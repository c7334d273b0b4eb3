package main

import "github.com/vietddude/jokecast/internal/cli"

func main() {
	cli.Execute()
}
