/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/moamenhredeen/swagger2postman/cmd"

func main() {
	cmd.Execute()
}
