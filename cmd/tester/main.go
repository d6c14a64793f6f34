// Manual probe client for the relay. Connects, declares a language,
// relays stdin lines as chat messages, and prints everything the server
// pushes back. On exit it renders a per-source-language summary table.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

type Config struct {
	ServerURL string `envconfig:"RELAY_SERVER_URL" default:"ws://localhost:3001/ws"`
	Lang      string `envconfig:"RELAY_LANG" default:"en-US"`
	Colours   bool   `envconfig:"RELAY_COLOURS" default:"true"`
}

// frame is the loose shape of every server push; only the fields of the
// frame's actual type are populated.
type frame struct {
	Type       string `json:"type"`
	SocketID   string `json:"socketId,omitempty"`
	ID         string `json:"id,omitempty"`
	Sender     string `json:"sender,omitempty"`
	Content    string `json:"content,omitempty"`
	SourceLang string `json:"sourceLang,omitempty"`
	TargetLang string `json:"targetLang,omitempty"`
	Lang       string `json:"lang,omitempty"`
}

func main() {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("config error: %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(config.ServerURL, nil)
	if err != nil {
		log.Fatalf("could not connect to %s: %v", config.ServerURL, err)
	}
	defer conn.Close()

	var mu sync.Mutex
	received := make(map[string]int)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var f frame
			if err := json.Unmarshal(raw, &f); err != nil {
				log.Printf("unreadable frame: %v", err)
				continue
			}
			printFrame(config, f)
			if f.Type == "msg" {
				mu.Lock()
				received[f.SourceLang]++
				mu.Unlock()
			}
		}
	}()

	join, _ := json.Marshal(map[string]string{"type": "join", "lang": config.Lang})
	if err := conn.WriteMessage(websocket.TextMessage, join); err != nil {
		log.Fatalf("join failed: %v", err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-interrupt:
			printSummary(&mu, received)
			return
		case <-done:
			printSummary(&mu, received)
			return
		case line, ok := <-lines:
			if !ok {
				printSummary(&mu, received)
				return
			}
			if line == "" {
				continue
			}
			chat, _ := json.Marshal(map[string]string{"type": "chat", "content": line})
			if err := conn.WriteMessage(websocket.TextMessage, chat); err != nil {
				log.Printf("send failed: %v", err)
				printSummary(&mu, received)
				return
			}
		}
	}
}

func printFrame(config Config, f frame) {
	switch f.Type {
	case "INIT":
		header := fmt.Sprintf("  ====== connected as %s ======", f.SocketID)
		if config.Colours {
			header = color.New(color.BgBlack, color.FgGreen).Render(header)
		}
		fmt.Println(header)
	case "READY":
		fmt.Println("relay ready")
	case "JOIN_CONFIRMED":
		fmt.Printf("language set to %s\n", f.Lang)
	case "msg":
		line := fmt.Sprintf("[%s→%s] %s: %s", f.SourceLang, f.TargetLang, f.Sender, f.Content)
		if config.Colours {
			line = color.New(color.FgCyan).Render(line)
		}
		fmt.Println(line)
	default:
		fmt.Printf("unknown frame type %q\n", f.Type)
	}
}

func printSummary(mu *sync.Mutex, received map[string]int) {
	mu.Lock()
	defer mu.Unlock()

	if len(received) == 0 {
		fmt.Println("\nNo messages received")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Source Lang", "Messages"})
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	rows := lo.MapToSlice(received, func(lang string, count int) []string {
		return []string{lang, fmt.Sprintf("%d", count)}
	})
	table.AppendBulk(rows)

	fmt.Println()
	table.Render()
}
