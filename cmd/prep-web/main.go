// Command prep-web starts a small web UI for the data preprocessor.
//
// Usage:
//
//	go run ./cmd/prep-web -addr :8080
package main

import (
	"flag"
	"log"

	"dataprep/internal/storage"
	"dataprep/internal/webui"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	srv := webui.NewServer(webui.Config{
		Addr:  *addr,
		Store: storage.NewMemStore(),
	})
	log.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
