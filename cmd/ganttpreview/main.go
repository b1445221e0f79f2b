package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Freeeeeet/roomplan/internal/engine"
	"github.com/Freeeeeet/roomplan/internal/model"
	"github.com/Freeeeeet/roomplan/internal/report"
)

// Renders a sample schedule to gantt_preview.png for eyeballing chart
// layout changes without real input files.
func main() {
	samples := []struct {
		name         string
		start, end   int
		participants int
	}{
		{"AI Workshop", 9, 12, 80},
		{"Cloud Talk", 10, 12, 40},
		{"Networking", 12, 13, 60},
		{"DevOps Training", 14, 18, 120},
		{"Startup Pitches", 16, 18, 100},
	}

	events := make([]*model.Event, 0, len(samples))
	for _, s := range samples {
		ev, err := model.NewEvent(s.name, s.start, s.end, s.participants, nil)
		if err != nil {
			fmt.Printf("Failed to build sample event: %v\n", err)
			os.Exit(1)
		}
		events = append(events, ev)
	}

	assignment, err := engine.NewGreedy().Allocate(context.Background(), events, nil)
	if err != nil {
		fmt.Printf("Failed to allocate sample events: %v\n", err)
		os.Exit(1)
	}

	png, err := report.Gantt(assignment)
	if err != nil {
		fmt.Printf("Failed to render chart: %v\n", err)
		os.Exit(1)
	}

	const path = "gantt_preview.png"
	if err := os.WriteFile(path, png, 0o644); err != nil {
		fmt.Printf("Failed to write %s: %v\n", path, err)
		os.Exit(1)
	}

	fmt.Printf("Chart written to %s (%d rooms, %d bytes)\n", path, assignment.RoomsOpened, len(png))
	fmt.Print(report.Text(assignment))
}
