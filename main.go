package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pvdberg/listmotion/internal/app"
)

func main() {
	logFile, err := os.Create("listmotion.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	debug := flag.Bool("debug", false, "Enable debug mode (shows the event log overlay)")
	flag.Parse()

	filePath := "tasks.json"
	if args := flag.Args(); len(args) > 0 {
		filePath = args[0]
	}

	application, err := app.NewApp(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *debug {
		application.SetDebugMode(true)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}
