package main

import "github.com/Mohsinsiddi/easyeth/cmd"

func main() {
	cmd.Execute()
}
