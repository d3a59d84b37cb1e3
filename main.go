package main

import "github.com/quocvuong92/osint-shell/cmd"

func main() {
	cmd.Execute()
}
