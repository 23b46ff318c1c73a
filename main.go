package main

import (
	"flag"
	"log"

	"whiteboard/internal/app"
)

func main() {
	mcpMode := flag.Bool("mcp", false, "run as an MCP server on stdin/stdout instead of the terminal UI")
	configPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	var err error
	if *mcpMode {
		err = app.ServeMCP(*configPath)
	} else {
		err = app.RunTUI(*configPath)
	}
	if err != nil {
		log.Fatal(err)
	}
}
