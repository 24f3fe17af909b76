package main

import "github.com/fayssalzakaria/data-analysis-on-an-HTML-file/cmd"

func main() {
	cmd.Execute()
}
