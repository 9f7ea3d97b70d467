package main

import "github.com/wenhao19971211/wanwan-desktop-pet/cmd"

func main() {
	cmd.Execute()
}
