package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"shortsfactory/demo/tui"
)

func main() {
	_ = godotenv.Load()

	serverURL := flag.String("url", "http://localhost:8080", "Render service URL")
	flag.Parse()

	m := tui.NewModel(*serverURL)
	program := tea.NewProgram(m)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
