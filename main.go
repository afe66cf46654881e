/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/tristendillon/swan2flowdroid/cmd"

func main() {
	cmd.Execute()
}
