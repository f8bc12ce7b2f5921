package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ghalamif/screenflux/pkg/screenflux"
)

func main() {
	flow, err := screenflux.Conf("../../data/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	totals := make(map[string]int64)
	callback := func(batch []screenflux.UsagePoint) error {
		for _, p := range batch {
			totals[p.App] += p.Usage
		}
		return nil
	}

	if _, err := flow.Run(context.Background(), screenflux.StreamOutCallback("totals", callback)); err != nil {
		log.Fatalf("runtime error: %v", err)
	}
	for app, secs := range totals {
		fmt.Printf("%-40s %s\n", app, time.Duration(secs)*time.Second)
	}
}
