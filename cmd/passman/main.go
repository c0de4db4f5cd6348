package main

import "github.com/john1234-oladipo/Secure-Password-Manager/cmd/passman/cmd"

func main() {
	cmd.Execute()
}
