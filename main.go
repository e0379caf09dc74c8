package main

import (
	"log"
	"time"

	"github.com/space458/gallery-backend/cmd"
	"github.com/space458/gallery-backend/config"
)

func init() {
	var kstZone = time.FixedZone("KST", 9*3600) // 서울
	time.Local = kstZone
}

func main() {
	log.Printf("gallery backend %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
