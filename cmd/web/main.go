package main

import (
	_ "embed"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/leaderboard"
	"github.com/tomz197/skirunner/internal/logger"
)

const (
	defaultHost      = "0.0.0.0"
	defaultPort      = "8080"
	defaultBoardPath = "/app/data/leaderboard.msgpack"
)

//go:embed index.html
var htmlPage string

var page = template.Must(template.New("index").Parse(htmlPage))

type row struct {
	Rank  int
	Name  string
	Score int
	Time  string
}

type pageData struct {
	SSHHost string
	Board   []row
}

func main() {
	l := logger.New(os.Stderr)

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	store := leaderboard.StoreAt(config.GetEnv("LEADERBOARD_FILE", defaultBoardPath))

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{SSHHost: sshHost, Board: loadRows(l, store)}
		if err := page.Execute(w, data); err != nil {
			l.Error("render page", "err", err)
		}
	})

	addr := net.JoinHostPort(host, port)
	l.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		l.Fatal("server error", "err", err)
	}
}

// loadRows reads the leaderboard the SSH server writes. Errors yield an empty table.
func loadRows(l *log.Logger, store leaderboard.Store) []row {
	if store == nil {
		return nil
	}
	entries, err := store.Load()
	if err != nil {
		l.Warn("could not read leaderboard", "err", err)
		return nil
	}
	rows := make([]row, len(entries))
	for i, e := range entries {
		rows[i] = row{Rank: i + 1, Name: e.Name, Score: e.Score, Time: leaderboard.FormatTime(e.RaceTime)}
	}
	return rows
}
