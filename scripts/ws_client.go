// Command ws_client is a demo client for a running solve's live
// progress stream: point it at a PROGRESS_ADDR a "solve" invocation is
// listening on and the run ID it printed, and it prints every snapshot
// frame until the run finishes.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"

	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", os.Getenv("PROGRESS_ADDR"), "host:port the solve process is listening on")
	runID := flag.String("run", "", "run id printed by solve at startup")
	flag.Parse()

	if *addr == "" || *runID == "" {
		log.Fatal("usage: ws_client -addr host:port -run <run-id>")
	}

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/progress/" + *runID}
	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer func() { _ = c.Close() }()

	for {
		var evt struct {
			Type string         `json:"type"`
			Data map[string]any `json:"data"`
		}
		if err := c.ReadJSON(&evt); err != nil {
			log.Printf("read: %v", err)
			return
		}
		data, _ := json.Marshal(evt.Data)
		log.Printf("%s: %s", evt.Type, data)
		if evt.Type == "finished" {
			return
		}
	}
}
