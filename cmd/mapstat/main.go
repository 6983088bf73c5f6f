package main

import "github.com/g-m-twostay/go-containers/cmd/mapstat/cmd"

func main() {
	cmd.Execute()
}
