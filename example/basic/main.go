package main

import (
	"context"
	"log"

	"github.com/ghalamif/screenflux"
)

func main() {
	flow, err := screenflux.Conf("../../data/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	rep, err := flow.Run(context.Background())
	if err != nil {
		log.Fatalf("sync failed: %v", err)
	}
	log.Printf("wrote %d of %d rows to %s in %s", rep.PointsWritten, rep.RowsRead, rep.Sink, rep.Duration)
}
