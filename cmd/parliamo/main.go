package main

import "parliamo/cmd/parliamo/root"

func main() {
	root.Execute()
}
