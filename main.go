package main

import "github.com/quocvuong92/operator-console/cmd"

func main() {
	cmd.Execute()
}
