package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vehicle-sim/parameter"
)

// SampleRate is the output rate shared by every generated stream
const SampleRate = beep.SampleRate(parameter.AudioSampleRate)

// speakerLock adapts the speaker's global lock to sync.Locker
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// Player owns the speaker and a master mixer
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      beep.Streamer
	initialized bool
}

// NewPlayer creates an idle player, Init opens the device
func NewPlayer(volume float64) *Player {
	mixer := &beep.Mixer{}
	return &Player{
		mixer:  mixer,
		master: newVolume(mixer, volume),
	}
}

// Init opens the speaker and starts streaming the mixer
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(p.master)
	p.initialized = true
	return nil
}

// Locker returns the lock Stream runs under, for streamers mutated from other goroutines
func (p *Player) Locker() sync.Locker {
	return speakerLock{}
}

// Add starts s on the mixer, dropped when s drains
func (p *Player) Add(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences everything
// Speaker is left open, the device cannot be reinitialized cleanly
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
