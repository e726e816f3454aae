package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"pewmap/internal/audio"
	"pewmap/internal/feed"
	"pewmap/internal/radar"
)

func main() {
	var feedURL string
	var demoOn bool
	var seed int64
	var mute bool

	flag.StringVar(&feedURL, "feed", "", "WebSocket URL of a live attack feed (empty = demo only)")
	flag.BoolVar(&demoOn, "demo", true, "start with synthetic demo traffic enabled")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "RNG seed for demo traffic")
	flag.BoolVar(&mute, "mute", false, "disable audio cues")
	flag.Parse()

	var sounds radar.Sounds
	if !mute {
		player := audio.NewPlayer()
		if err := player.Initialize(); err != nil {
			// No audio device is not fatal; the board runs silent.
			log.Printf("audio unavailable: %v", err)
		} else {
			defer player.Cleanup()
			sounds = player
		}
	}

	var events <-chan radar.AttackEvent
	if feedURL != "" {
		client := feed.NewClient(feedURL, 256)
		client.Start()
		defer client.Stop()
		events = client.Events()
	}

	game := radar.NewGame(sounds, events, radar.NewDemo(seed), demoOn)

	ebiten.SetWindowTitle("pewmap")
	ebiten.SetWindowSize(1190, 480)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
