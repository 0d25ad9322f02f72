package main

import "github.com/ongood/metabase-sub001/cmd"

func main() {
	cmd.Execute()
}
