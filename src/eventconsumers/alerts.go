package eventconsumers

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	pubsub "github.com/aum7/aumchi/src/eventpubsub"
	"github.com/aum7/aumchi/src/models"
)

// SoundPlayer is the host's notification surface.
type SoundPlayer interface {
	Play(file string) error
}

// LogSoundPlayer stands in when no host notification channel is wired.
type LogSoundPlayer struct{}

func (LogSoundPlayer) Play(file string) error {
	log.Infof("LogSoundPlayer.Play: %s", file)
	return nil
}

// AlertNotifier plays the configured sound on alert signals. Playback
// failures are caught and logged, never propagated.
type AlertNotifier struct {
	wg        *sync.WaitGroup
	player    SoundPlayer
	soundFile string
}

func (a *AlertNotifier) handleAlert(alert models.Alert) {
	log.Infof("AlertNotifier.handleAlert: %v", alert)

	if a.player == nil {
		return
	}
	if err := a.player.Play(a.soundFile); err != nil {
		log.Errorf("AlertNotifier.handleAlert: alert sound failed : %v", err)
	}
}

func (a *AlertNotifier) Start(ctx context.Context) {
	a.wg.Add(1)

	pubsub.Subscribe(pubsub.AlertSignalEvent, a.handleAlert)

	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		log.Info("stopping AlertNotifier consumer")
	}()
}

func NewAlertNotifier(wg *sync.WaitGroup, player SoundPlayer, soundFile string) *AlertNotifier {
	return &AlertNotifier{
		wg:        wg,
		player:    player,
		soundFile: soundFile,
	}
}
